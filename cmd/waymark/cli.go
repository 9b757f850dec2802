package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/waymark/annotate/internal/dispatcher"
	"github.com/waymark/annotate/internal/interaction"
	"github.com/waymark/annotate/internal/mapengine"
	"github.com/waymark/annotate/internal/storage"
	"github.com/waymark/annotate/pkg/core"
)

// console is both the REPL and the dialog service: form prompts and
// delete confirmations read from the same stdin the commands do, which
// mirrors how the modal dialogs block the gesture stream in the real UI.
type console struct {
	in  *bufio.Scanner
	out io.Writer
}

func newConsole(in io.Reader, out io.Writer) *console {
	return &console{in: bufio.NewScanner(in), out: out}
}

func (c *console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *console) readLine(prompt string) (string, bool) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// PresentPlacementForm prompts for the quick placement form.
func (c *console) PresentPlacementForm(ctx context.Context, at core.Coordinate) (core.FormResult, bool, error) {
	c.printf("-- new annotation at (%.5f, %.5f), empty title cancels --\n", at.Lat, at.Lng)

	title, ok := c.readLine("title: ")
	if !ok || title == "" {
		return core.FormResult{}, false, nil
	}
	icon, _ := c.readLine("icon [pin]: ")
	if icon == "" {
		icon = "pin"
	}
	quick, _ := c.readLine("quick save? [Y/n]: ")

	now := time.Now()
	return core.FormResult{
		Title:     title,
		Icon:      icon,
		Date:      &now,
		QuickSave: !strings.EqualFold(quick, "n"),
	}, true, nil
}

// PresentEditForm prompts with current values; empty input keeps them.
func (c *console) PresentEditForm(ctx context.Context, existing core.AnnotationRecord) (core.FormResult, bool, error) {
	c.printf("-- editing %q (#%d), '.' cancels --\n", existing.Title, existing.StorageID)

	title, ok := c.readLine(fmt.Sprintf("title [%s]: ", existing.Title))
	if !ok || title == "." {
		return core.FormResult{}, false, nil
	}
	icon, _ := c.readLine(fmt.Sprintf("icon [%s]: ", existing.IconName))
	note, _ := c.readLine(fmt.Sprintf("note [%s]: ", existing.Note))

	return core.FormResult{Title: title, Icon: icon, Note: note}, true, nil
}

// ConfirmDeletion asks yes/no.
func (c *console) ConfirmDeletion(ctx context.Context, title string) (bool, error) {
	answer, ok := c.readLine(fmt.Sprintf("delete %q? [y/N]: ", title))
	if !ok {
		return false, nil
	}
	return strings.EqualFold(answer, "y"), nil
}

const consoleHelp = `commands:
  press X Y     long press at screen point
  drag X Y      drag update
  release X Y   end of drag
  tap ID        tap a marker by handle id
  move | edit | connect | lock | cancel
  events        drain pending presentation events
  list          show stored annotations
  connections ID  show connections touching a storage id
  markers       show live markers
  help | quit`

// loop reads commands and feeds them through the dispatcher, the same
// entry point the embedded input bridge uses.
func (c *console) loop(ctx context.Context, d *dispatcher.Dispatcher, f *interaction.Facade, engine *mapengine.Sim, repo storage.Repository) error {
	c.printf("%s\n", consoleHelp)

	for {
		line, ok := c.readLine(fmt.Sprintf("[%s]> ", f.Controller().ModeName()))
		if !ok {
			return nil
		}
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		verb, args := strings.ToLower(fields[0]), fields[1:]

		switch verb {
		case "quit", "exit":
			return nil
		case "help":
			c.printf("%s\n", consoleHelp)
		case "events":
			for _, e := range f.Events() {
				c.printf("event %s handle=%d (%.5f, %.5f)\n",
					e.Type, e.Handle.ID, e.Geometry.Lat, e.Geometry.Lng)
			}
		case "list":
			records, err := repo.GetAll(ctx)
			if err != nil {
				c.printf("error: %v\n", err)
				continue
			}
			for _, r := range records {
				c.printf("#%d %q icon=%s (%.5f, %.5f) note=%q\n",
					r.StorageID, r.Title, r.IconName, r.Latitude, r.Longitude, r.Note)
			}
		case "connections":
			if len(args) != 1 {
				c.printf("usage: connections ID\n")
				continue
			}
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				c.printf("error: %v\n", err)
				continue
			}
			conns, err := repo.ConnectionsFor(ctx, uint(id))
			if err != nil {
				c.printf("error: %v\n", err)
				continue
			}
			for _, conn := range conns {
				c.printf("connection #%d: #%d -> #%d\n", conn.ID, conn.FromID, conn.ToID)
			}
		case "markers":
			c.printf("%d live markers\n", engine.MarkerCount())
		case "press", "drag", "release", "tap", "move", "edit", "connect", "lock", "cancel":
			cmd := ":" + strings.ToUpper(verb) + ":"
			if _, err := d.Dispatch(dispatcher.Event{
				Command:   cmd,
				Args:      args,
				Timestamp: time.Now(),
			}); err != nil {
				c.printf("error: %v\n", err)
			}
		default:
			c.printf("unknown command %q, try 'help'\n", verb)
		}
	}
}
