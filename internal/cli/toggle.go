package cli

import (
	"context"
	"fmt"

	"habit-tracker/internal/model"
	"habit-tracker/internal/service"
)

type ToggleCmd struct {
	User  string `required:"" help:"Profile id or messaging address."`
	Habit string `required:"" help:"Habit id or name."`
}

func (c *ToggleCmd) Run(ctx *Context) error {
	a, err := ctx.open(false)
	if err != nil {
		return err
	}
	defer a.Close()

	bg := context.Background()
	profile, err := a.resolveUser(bg, c.User)
	if err != nil {
		return err
	}

	habits := service.NewHabitService(a.store, a.loc)
	list, err := habits.ListWithLogs(bg, profile.ID)
	if err != nil {
		return err
	}
	target, ok := findHabit(model.WithStatus(list, habits.Today()), c.Habit)
	if !ok {
		return fmt.Errorf("habit %q not found", c.Habit)
	}

	done, err := habits.ToggleToday(bg, profile.ID, target.ID)
	if err != nil {
		return err
	}

	if done {
		fmt.Printf("✅ %s marcado como feito em %s\n", target.Name, habits.Today())
	} else {
		fmt.Printf("↩️ %s desmarcado em %s\n", target.Name, habits.Today())
	}
	return nil
}

func findHabit(habits []model.HabitWithStatus, ref string) (model.HabitWithStatus, bool) {
	for _, h := range habits {
		if h.ID == ref {
			return h, true
		}
	}
	return service.ResolveHabit(habits, ref)
}
