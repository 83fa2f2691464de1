// Package console is the line-oriented terminal the example apps talk to.
//
// A Console is an explicit resource: the runner acquires it before
// initialize and closes it after shutdown on every exit path. Apps never
// reach for os.Stdin themselves.
//
// Menu renders the numbered menus and turns a single numeric token into
// the selected item:
//
//	menu := console.Menu{Items: []console.Item{
//	    {Label: "Increment (+1)", Action: inc},
//	    {Label: "Exit", Action: stop},
//	}}
//	menu.Render(c, "Current Value: 0")
//	item, err := menu.Choose(c)
package console
