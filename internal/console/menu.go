package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidChoice matches every *InvalidChoiceError
var ErrInvalidChoice = errors.New("invalid menu choice")

// InvalidChoiceError reports input that does not select a menu item
type InvalidChoiceError struct {
	Input string
	Max   int
}

func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("Invalid option. Please choose 1-%d.", e.Max)
}

func (e *InvalidChoiceError) Is(target error) bool {
	return target == ErrInvalidChoice
}

// Item is one numbered menu entry
type Item struct {
	Label  string
	Action func() error
}

// Menu is a numbered list of items selected by a single token
type Menu struct {
	Items []Item
	// Prompt defaults to "Choose an option: "
	Prompt string
}

// Render writes the header, the numbered items and the prompt
func (m Menu) Render(c *Console, header string) {
	c.Printf("\n--- %s ---\n", header)
	for i, item := range m.Items {
		c.Printf("%d. %s\n", i+1, item.Label)
	}
	prompt := m.Prompt
	if prompt == "" {
		prompt = "Choose an option: "
	}
	c.Print("\n" + prompt)
}

// Choose reads one line and returns the selected item
func (m Menu) Choose(c *Console) (Item, error) {
	line, err := c.ReadLine()
	if err != nil {
		return Item{}, err
	}
	return m.Select(line)
}

// Select resolves a raw token to an item. Surrounding whitespace is ignored.
func (m Menu) Select(token string) (Item, error) {
	token = strings.TrimSpace(token)
	n, err := strconv.Atoi(token)
	if err != nil || n < 1 || n > len(m.Items) {
		return Item{}, &InvalidChoiceError{Input: token, Max: len(m.Items)}
	}
	return m.Items[n-1], nil
}
