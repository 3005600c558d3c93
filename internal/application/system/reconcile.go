package system

import (
	"fmt"
	"image"

	"github.com/younwookim/puppet/internal/domain/entity"
	"github.com/younwookim/puppet/internal/infrastructure/assets"
	"github.com/younwookim/puppet/internal/infrastructure/logging"
)

// Window is the part of the windowing backend reconciliation drives
type Window interface {
	CanvasSize() (width, height int)
	Resize(width, height int) error
	SetTitle(title string)
	SetIcon(icon image.Image)
}

// IconLoader decodes window icons
type IconLoader interface {
	LoadIcon(path string) (image.Image, error)
}

// ReconcileConfig configures a Reconciler
type ReconcileConfig struct {
	Roots        assets.Roots
	FallbackIcon string // Image reference used when the declared icon cannot be loaded
	DefaultTitle string // Title used when a snapshot declares none
}

// Reconciler merges snapshots into the live scene and applies the window
// side effects of each merge.
type Reconciler struct {
	window Window
	icons  IconLoader
	config ReconcileConfig
	logger *logging.Logger

	iconApplied bool
}

// NewReconciler creates a new reconciler
func NewReconciler(window Window, icons IconLoader, cfg ReconcileConfig, logger *logging.Logger) *Reconciler {
	return &Reconciler{
		window: window,
		icons:  icons,
		config: cfg,
		logger: logger,
	}
}

// Apply merges snap into scene (nil before the first snapshot) and returns
// the live scene. The merge always succeeds; the returned error reports a
// failed window side effect only.
func (r *Reconciler) Apply(scene *entity.Scene, snap *entity.Snapshot) (*entity.Scene, error) {
	scene = Merge(scene, snap)

	var err error
	w, h := r.window.CanvasSize()
	if w != snap.Window.Width || h != snap.Window.Height {
		if rerr := r.window.Resize(snap.Window.Width, snap.Window.Height); rerr != nil {
			err = fmt.Errorf("resize window to %dx%d: %w", snap.Window.Width, snap.Window.Height, rerr)
		}
	}

	title := snap.Window.Title
	if title == "" {
		title = r.config.DefaultTitle
	}
	r.window.SetTitle(title)

	// The icon is applied once per process; later icon_path changes are ignored.
	if !r.iconApplied {
		r.iconApplied = true
		r.applyIcon(snap.Window.IconPath)
	}

	return scene, err
}

func (r *Reconciler) applyIcon(ref string) {
	for _, candidate := range []string{ref, r.config.FallbackIcon} {
		if candidate == "" {
			continue
		}
		path := r.config.Roots.Image(candidate)
		icon, err := r.icons.LoadIcon(path)
		if err != nil {
			r.logger.Errorf("window icon %s: %v", path, err)
			continue
		}
		r.window.SetIcon(icon)
		return
	}
	r.logger.Debugf("no window icon applied")
}

// Merge performs the identity-keyed merge of snap into scene. Sprites whose
// id was already live keep their frame index and accumulated time; new ids
// start at frame 0; ids absent from snap are dropped. The sprite order is the
// snapshot's order. Text is replaced wholesale.
func Merge(scene *entity.Scene, snap *entity.Snapshot) *entity.Scene {
	if scene == nil {
		scene = &entity.Scene{}
	}

	prev := make(map[string]*entity.Sprite, len(scene.Sprites))
	for _, sp := range scene.Sprites {
		if _, ok := prev[sp.ID]; !ok {
			prev[sp.ID] = sp
		}
	}

	sprites := make([]*entity.Sprite, 0, len(snap.Sprites))
	for _, desc := range snap.Sprites {
		sp := &entity.Sprite{}
		if old, ok := prev[desc.ID]; ok {
			sp.Frame = old.Frame
			sp.Elapsed = old.Elapsed
		}
		sp.Describe(desc)
		sprites = append(sprites, sp)
	}

	scene.Window = snap.Window
	scene.Sprites = sprites
	scene.Text = append([]entity.TextDesc(nil), snap.Text...)
	scene.DefaultFont = snap.DefaultFont
	scene.FrameDuration = snap.FrameDuration()
	return scene
}
