package tui

import (
	"os"

	help "github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	"vecview/internal/config"
	"vecview/internal/geom"
	"vecview/internal/raster"
	"vecview/internal/scene"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status    string
	statusErr bool

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Pipeline
	cfg      *config.Config
	log      hclog.Logger
	loader   *scene.Loader
	renderer raster.Renderer
	style    scene.Style
	sc       *scene.Scene
	viewport geom.Viewport
	pasted   int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// inspect popup
	inspectPopup string

	// hover state
	hovering   bool
	hoverCellX int
	hoverCellY int
	hoverHasXY bool
	hoverX     float64
	hoverY     float64

	// polygon table
	showAttrs bool
	tbl       table.Model

	keys keyMap
	help help.Model
}

// New returns a viewer with an empty scene. Logging goes to log, which
// must not write to the terminal the viewer draws on.
func New(cfg *config.Config, log hclog.Logger) (Model, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	m := Model{
		helpVisible: true,
		status:      "vecview ready",
		cfg:         cfg,
		log:         log,
		keys:        newKeyMap(),
		help:        help.New(),
	}
	var err error
	if m.loader, err = cfg.Loader(log.Named("scene")); err != nil {
		return Model{}, err
	}
	if m.renderer, err = cfg.Renderer(log.Named("raster")); err != nil {
		return Model{}, err
	}
	if m.style, err = cfg.DefaultStyle(); err != nil {
		return Model{}, err
	}
	m.sc = scene.New(cfg.Space())
	if m.viewport, err = geom.NewViewport(cfg.Space(), cfg.FB()); err != nil {
		return Model{}, err
	}

	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste relative path data (m, l, h, v, c, z), e.g. m 100,100 l 200,0 0,200 z. Enter to add; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m, nil
}

// NewWithPath preloads a file at launch. A failing load is reported in the
// status line and leaves the scene empty.
func NewWithPath(cfg *config.Config, log hclog.Logger, path string) (Model, error) {
	m, err := New(cfg, log)
	if err != nil {
		return Model{}, err
	}
	m.loadPath(path)
	return m, nil
}

func (m Model) Init() tea.Cmd { return nil }

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}
