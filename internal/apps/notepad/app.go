package notepad

import (
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/miniapp/internal/console"
	"github.com/GriffinCanCode/miniapp/internal/domain/app"
)

// App implements app.App for the notepad
type App struct {
	note State
	done bool
}

// New creates a notepad app
func New() *App {
	return &App{}
}

func (a *App) Initialize(env *app.Env[State]) error {
	c := env.Console
	c.Println("\n=== NotePad App ===")
	c.Println("Welcome to the NotePad App")

	a.done = false
	if s, ok := env.State.Data(); ok {
		a.note = s
		c.Printf("Loaded existing note: %s\n", a.note.Note)
	} else {
		a.note = State{}
		c.Println("Starting with a new empty note.")
	}
	return nil
}

func (a *App) Step(env *app.Env[State]) (app.Status, error) {
	c := env.Console
	menu := a.menu(env)
	menu.Render(c, "Current Note: "+a.note.Note)

	item, err := menu.Choose(c)
	switch {
	case errors.Is(err, io.EOF):
		a.exit(c)
		return app.Stop, nil
	case errors.Is(err, console.ErrInvalidChoice):
		c.Println(err.Error())
		return app.Continue, nil
	case err != nil:
		return app.Stop, err
	}

	if err := item.Action(); err != nil {
		return app.Stop, err
	}
	if a.done {
		return app.Stop, nil
	}
	return app.Continue, nil
}

func (a *App) Shutdown(env *app.Env[State]) error {
	env.State.SetData(a.note)
	env.Console.Printf("\nFinal note text: %s\n", a.note.Note)
	env.Console.Println("Goodbye!")
	return nil
}

func (a *App) menu(env *app.Env[State]) console.Menu {
	c := env.Console
	format := strings.ToUpper(env.Format)
	return console.Menu{Items: []console.Item{
		{Label: "Append Text", Action: func() error {
			return a.appendText(c)
		}},
		{Label: "Clear Note", Action: func() error {
			a.note.Clear()
			c.Println("Note cleared")
			return nil
		}},
		{Label: "Get Note Length", Action: func() error {
			c.Printf("Note length: %d\n", a.note.Len())
			return nil
		}},
		{Label: "Export to " + format + " file", Action: func() error {
			a.export(env)
			return nil
		}},
		{Label: "Import from " + format + " file", Action: func() error {
			a.load(env)
			return nil
		}},
		{Label: "Exit", Action: func() error {
			a.exit(c)
			return nil
		}},
	}}
}

// appendText reads the next raw line. Input ending here exits the app.
func (a *App) appendText(c *console.Console) error {
	c.Println("Enter text to append:")
	text, err := c.ReadLine()
	if errors.Is(err, io.EOF) {
		a.exit(c)
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := a.note.Append(text); err != nil {
		c.Printf("Error: %v.\n", err)
		return nil
	}
	c.Printf("Append Note: %s\n", text)
	return nil
}

func (a *App) export(env *app.Env[State]) {
	env.State.SetData(a.note)
	path, err := env.Export("")
	if err != nil {
		env.Console.Printf("Error exporting file: %v\n", err)
		return
	}
	env.Logger.Debug("note exported", zap.Int("length", a.note.Len()))
	env.Console.Printf("NotePad state exported successfully to: %s\n", path)
}

func (a *App) load(env *app.Env[State]) {
	path, err := env.Import("")
	if err != nil {
		env.Console.Printf("Error importing file: %v\n", err)
		return
	}
	s, ok := env.State.Data()
	if !ok {
		env.Console.Println("Error: No data found in file.")
		return
	}
	a.note = s
	env.Console.Printf("NotePad state imported successfully from %s!\n", path)
	env.Console.Printf("New text: %s\n", a.note.Note)
}

func (a *App) exit(c *console.Console) {
	a.done = true
	c.Println("\nExiting...")
}
