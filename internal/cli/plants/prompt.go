package plants

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// promptJournal asks for a journal entry in the terminal
func promptJournal() (string, error) {
	var text string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("How are you feeling today?").
				Placeholder("Write as much or as little as you like...").
				CharLimit(4000).
				Value(&text).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("journal entry cannot be empty")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return "", err
	}
	return text, nil
}
