package cli

import (
	"context"
	"fmt"
	"time"
)

type RemindCmd struct {
	At string `help:"Run the window containing this local time (YYYY-MM-DDTHH:MM) instead of now."`
}

func (c *RemindCmd) Run(ctx *Context) error {
	a, err := ctx.open(true)
	if err != nil {
		return err
	}
	defer a.Close()

	reminders := a.reminders(ctx.Config)
	at := time.Now()
	if c.At != "" {
		at, err = time.ParseInLocation("2006-01-02T15:04", c.At, a.loc)
		if err != nil {
			return fmt.Errorf("invalid --at %q: %w", c.At, err)
		}
	}

	res, err := reminders.DispatchAt(context.Background(), at)
	if err != nil {
		return err
	}

	fmt.Printf("Janela %s: %d enviados, %d ignorados, %d falharam\n", res.Hour, res.Sent, res.Skipped, res.Failed)
	return nil
}
