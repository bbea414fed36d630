package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/pkg/errors"

	"vecview/internal/scene"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.setError(errors.Wrap(err, "read dir"))
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !scene.Supported(name) {
			continue
		}
		items = append(items, fileItem{
			title: name,
			desc:  strings.ToLower(filepath.Ext(name)),
			path:  filepath.Join(m.cwd, name),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.setStatus("no supported files in current directory")
	}
}

// loadPath replaces the scene with the contents of p. On failure the
// previous scene stays on screen.
func (m *Model) loadPath(p string) {
	doc, err := scene.LoadFile(p, m.style, m.log.Named("reader"))
	if err != nil {
		m.log.Warn("load failed", "path", p, "error", err)
		m.setError(errors.Wrap(err, "load"))
		return
	}
	sc, err := m.loader.Load(doc)
	if err != nil {
		m.log.Warn("load failed", "path", p, "error", err)
		m.setError(errors.Wrap(err, "load"))
		return
	}
	m.selPath = p
	m.sc = sc
	m.pasted = 0
	m.inspectPopup = ""
	m.resetViewport()
	points := 0
	for _, poly := range sc.Polygons() {
		points += poly.NumPoints()
	}
	m.setStatus("loaded: " + filepath.Base(p) +
		fmt.Sprintf("  polygons=%d points=%d", len(sc.Polygons()), points))
	// If the table is currently shown, verify it still has rows
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}
