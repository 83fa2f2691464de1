package counter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/miniapp/internal/console"
	"github.com/GriffinCanCode/miniapp/internal/domain/app"
)

// App implements app.App for the counter
type App struct {
	counter State
	done    bool
}

// New creates a counter app
func New() *App {
	return &App{}
}

func (a *App) Initialize(env *app.Env[State]) error {
	c := env.Console
	c.Println("\n=== Counter App ===")
	c.Println("Welcome to the Counter App!")

	a.done = false
	if s, ok := env.State.Data(); ok {
		a.counter = s
		c.Printf("Loaded existing counter: %d\n", a.counter.Value)
	} else {
		a.counter = State{}
		c.Printf("Starting with new counter at: %d\n", a.counter.Value)
	}
	return nil
}

func (a *App) Step(env *app.Env[State]) (app.Status, error) {
	c := env.Console
	menu := a.menu(env)
	menu.Render(c, fmt.Sprintf("Current Value: %d", a.counter.Value))

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
	env.State.SetData(a.counter)
	env.Console.Printf("\nFinal counter value: %d\n", a.counter.Value)
	env.Console.Println("Goodbye!")
	return nil
}

func (a *App) menu(env *app.Env[State]) console.Menu {
	c := env.Console
	format := strings.ToUpper(env.Format)
	return console.Menu{Items: []console.Item{
		{Label: "Increment (+1)", Action: func() error {
			v, err := a.counter.Increment()
			if err != nil {
				c.Println("Error: counter is at its maximum value.")
				return nil
			}
			c.Printf("Counter incremented to: %d\n", v)
			return nil
		}},
		{Label: "Decrement (-1)", Action: func() error {
			v, err := a.counter.Decrement()
			if err != nil {
				c.Println("Error: counter is at its minimum value.")
				return nil
			}
			c.Printf("Counter decremented to: %d\n", v)
			return nil
		}},
		{Label: "Reset to 0", Action: func() error {
			a.counter.Reset()
			c.Printf("Counter reset to: %d\n", a.counter.Value)
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

func (a *App) export(env *app.Env[State]) {
	env.State.SetData(a.counter)
	path, err := env.Export("")
	if err != nil {
		env.Console.Printf("Error exporting file: %v\n", err)
		return
	}
	env.Logger.Debug("counter exported", zap.Int("value", a.counter.Value))
	env.Console.Printf("Counter state exported successfully to: %s\n", path)
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
	a.counter = s
	env.Console.Printf("Counter state imported successfully from %s!\n", path)
	env.Console.Printf("New value: %d\n", a.counter.Value)
}

func (a *App) exit(c *console.Console) {
	a.done = true
	c.Println("\nExiting...")
}
