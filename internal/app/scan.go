package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/crates/internal/errmsg"
	"github.com/llehouerou/crates/internal/library"
	"github.com/llehouerou/crates/internal/notify"
	"github.com/llehouerou/crates/internal/playback"
	"github.com/llehouerou/crates/internal/ui/jobbar"
	"github.com/llehouerou/crates/internal/ui/scanreport"
)

// Scanner imports the audio files found under the library sources.
type Scanner interface {
	Scan(ctx context.Context, sources []string, progress chan<- library.ScanProgress) (*library.ScanStats, error)
}

var _ Scanner = (*library.Library)(nil)

// scanProgressMsg reports one step of a running rescan.
type scanProgressMsg library.ScanProgress

// scanDoneMsg ends a rescan.
type scanDoneMsg struct {
	stats *library.ScanStats
	err   error
}

// waitForChannel creates a command that waits for a value from a channel and converts it to a message.
// onResult receives the value and a boolean indicating if the channel is still open (false means channel closed).
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

// startScan rescans the library sources in the background. It returns nil
// if a scan is already running.
func (m *Model) startScan() tea.Cmd {
	if m.scanner == nil || m.scanCh != nil {
		return nil
	}
	if len(m.sources) == 0 {
		return m.setStatus("No library sources configured", true)
	}

	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan library.ScanProgress, 16)
	result := make(chan scanDoneMsg, 1)
	m.scanCh, m.scanResult, m.scanCancel = ch, result, cancel

	scanner, sources := m.scanner, m.sources
	log := m.log.WithField("sources", sources)
	go func() {
		stats, err := scanner.Scan(ctx, sources, ch)
		if err != nil {
			log.WithError(err).Warn("library scan failed")
		}
		result <- scanDoneMsg{stats: stats, err: err}
		close(ch)
	}()

	log.Info("library scan started")
	m.scanJob = &jobbar.Job{Label: "Scanning library sources"}
	m.relayout()
	return m.waitForScan()
}

func (m Model) waitForScan() tea.Cmd {
	result := m.scanResult
	return waitForChannel(m.scanCh, func(p library.ScanProgress, ok bool) tea.Msg {
		if !ok {
			return <-result
		}
		return scanProgressMsg(p)
	})
}

func (m *Model) handleScanProgress(p scanProgressMsg) tea.Cmd {
	job := jobbar.ScanJob(library.ScanProgress(p))
	m.scanJob = &job
	return m.waitForScan()
}

func (m *Model) handleScanDone(msg scanDoneMsg) tea.Cmd {
	m.scanCancel()
	m.scanCh, m.scanResult, m.scanCancel = nil, nil, nil
	m.scanJob = nil
	m.relayout()
	if errors.Is(msg.err, library.ErrScanBusy) {
		return m.setStatus("A library scan is already running elsewhere", false)
	}
	if msg.err != nil {
		return m.setStatus(errmsg.Format(errmsg.OpLibraryScan, msg.err), true)
	}
	m.log.WithFields(logrus.Fields{
		"added":   msg.stats.Added,
		"updated": msg.stats.Updated,
		"removed": msg.stats.Removed,
	}).Info("library scan finished")

	report := scanreport.New(m.sources, msg.stats)
	m.openOverlay(&report)
	if m.player != nil {
		m.player.NotifyMetaChanged(playback.MetaLibrary)
	}
	return m.notify(notify.ScanFinished(*msg.stats), false)
}
