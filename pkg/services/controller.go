package services

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/kerbaras/spotlight/pkg/app/styles"
	"github.com/kerbaras/spotlight/pkg/data"
	"github.com/kerbaras/spotlight/pkg/sources"
	"github.com/rs/zerolog"
	"go.trai.ch/zerr"
)

// Mode selects what a run does with the spotlight entries.
type Mode int

const (
	ModeCurrent Mode = iota
	ModeList
	ModeAll
	ModeURLs
)

func (m Mode) String() string {
	switch m {
	case ModeList:
		return "list"
	case ModeAll:
		return "all"
	case ModeURLs:
		return "urls"
	default:
		return "current"
	}
}

// SelectMode applies the flag precedence list > urls > all > current.
func SelectMode(list, all bool, urls []string) Mode {
	switch {
	case list:
		return ModeList
	case len(urls) > 0:
		return ModeURLs
	case all:
		return ModeAll
	default:
		return ModeCurrent
	}
}

// WallpaperDownloader is satisfied by *Downloader.
type WallpaperDownloader interface {
	Download(input data.DownloadInput, dest string, force bool) (string, error)
}

// Options control where and how wallpapers are saved.
type Options struct {
	Output string
	Force  bool
	Plain  bool // list without the table
}

// Summary counts the outcome of a run.
type Summary struct {
	Attempted int
	Succeeded int
	Failed    int
}

// Controller runs one invocation against a snapshot of the spotlight store.
type Controller struct {
	entries    []data.Wallpaper
	current    int
	downloader WallpaperDownloader
	opts       Options
	out        io.Writer
	logger     zerolog.Logger
}

// NewController reads the source once. An error means there is nothing to
// act on and the run must stop.
func NewController(source sources.Source, downloader WallpaperDownloader, opts Options, out io.Writer, logger zerolog.Logger) (*Controller, error) {
	entries, current, err := source.FetchEntries()
	if err != nil {
		return nil, err
	}
	if opts.Output == "" {
		opts.Output = "."
	}
	return &Controller{
		entries:    entries,
		current:    current,
		downloader: downloader,
		opts:       opts,
		out:        out,
		logger:     logger,
	}, nil
}

// Run executes mode. Per item failures are counted, never returned.
func (c *Controller) Run(mode Mode, urls []string) Summary {
	c.logger.Debug().Stringer("mode", mode).Int("entries", len(c.entries)).Msg("Running")
	switch mode {
	case ModeList:
		c.List()
		return Summary{}
	case ModeURLs:
		return c.DownloadURLs(urls)
	case ModeAll:
		return c.DownloadAll()
	default:
		return c.DownloadCurrent()
	}
}

// DownloadAll downloads every entry in rotation order.
func (c *Controller) DownloadAll() Summary {
	var s Summary
	for _, entry := range c.entries {
		c.download(entry, &s)
	}
	return s
}

// DownloadURLs downloads each detail page URL in the order given.
func (c *Controller) DownloadURLs(urls []string) Summary {
	var s Summary
	for _, u := range urls {
		c.download(data.URL(u), &s)
	}
	return s
}

// DownloadCurrent downloads the entry on screen.
func (c *Controller) DownloadCurrent() Summary {
	var s Summary
	if c.current < 0 || c.current >= len(c.entries) {
		err := zerr.With(zerr.New("current index out of range"), "index", c.current)
		c.logger.Warn().Err(err).Int("entries", len(c.entries)).Msg("No current wallpaper")
		fmt.Fprintln(c.out, styles.ErrorStyle.Render("Failed to download the current wallpaper."))
		s.Attempted++
		s.Failed++
		return s
	}
	c.download(c.entries[c.current], &s)
	return s
}

func (c *Controller) download(input data.DownloadInput, s *Summary) {
	s.Attempted++
	path, err := c.downloader.Download(input, c.opts.Output, c.opts.Force)
	if path == "" {
		s.Failed++
		c.logger.Debug().Err(err).Str("input", input.PageURL()).Msg("Download failed")
		fmt.Fprintln(c.out, styles.ErrorStyle.Render(fmt.Sprintf("Failed to download the wallpaper %s.", input.Label())))
		return
	}
	s.Succeeded++
	fmt.Fprintln(c.out, styles.SuccessStyle.Render("Downloaded to "+path))
}

// List prints every entry, marking the current one.
func (c *Controller) List() {
	if c.opts.Plain {
		c.listPlain()
		return
	}

	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Title", Width: 40},
		{Title: "Description", Width: 60},
		{Title: "", Width: 9},
	}

	rows := make([]table.Row, 0, len(c.entries))
	for i, entry := range c.entries {
		marker := ""
		if i == c.current {
			marker = "current"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			truncateString(entry.Title, 38),
			truncateString(entry.Description, 58),
			marker,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1),
	)
	if c.current >= 0 && c.current < len(rows) {
		t.SetCursor(c.current)
	}

	s := table.DefaultStyles()
	s.Header = styles.TableHeaderStyle
	s.Selected = styles.TableSelectedStyle
	t.SetStyles(s)

	fmt.Fprintf(c.out, "\n%s\n\n", styles.TitleStyle.Render(fmt.Sprintf("Spotlight (%d wallpapers)", len(c.entries))))
	fmt.Fprintln(c.out, t.View())
}

func (c *Controller) listPlain() {
	for i, entry := range c.entries {
		if i == c.current {
			fmt.Fprintf(c.out, "%d. %s %s\n", i+1, entry.Title, styles.CurrentStyle.Render("(current)"))
		} else {
			fmt.Fprintf(c.out, "%d. %s\n", i+1, entry.Title)
		}
		fmt.Fprintf(c.out, "   %s\n", styles.MutedStyle.Render(entry.Description))
	}
}

func truncateString(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
