package apply

import (
	"context"
	"fmt"
	"time"

	"github.com/iiroan/itermprofile/internal/exec"
	"github.com/iiroan/itermprofile/internal/platform"
)

// Restarter quits and relaunches iTerm2 so it rereads its preferences
type Restarter struct {
	Process string
	App     string
	Timeout time.Duration
	Options exec.Options

	// run is swapped in tests.
	run func(ctx context.Context, name string, args []string, opts exec.Options) *exec.Result
}

// Restarter builds a restarter from the configured restart settings
func (a *Applier) Restarter() (*Restarter, error) {
	timeout := 30 * time.Second
	if a.cfg.Restart.Timeout != "" {
		d, err := time.ParseDuration(a.cfg.Restart.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid restart.timeout %q: %w", a.cfg.Restart.Timeout, err)
		}
		timeout = d
	}

	opts := exec.DefaultOptions()
	opts.Timeout = timeout
	opts.Logger = a.logger

	return &Restarter{
		Process: a.cfg.Restart.Process,
		App:     a.cfg.Restart.App,
		Timeout: timeout,
		Options: opts,
		run:     exec.Run,
	}, nil
}

// Commands returns the commands Restart runs, for display
func (r *Restarter) Commands() []string {
	return []string{
		exec.FormatCommand("killall", []string{r.Process}),
		exec.FormatCommand("open", []string{"-a", r.App}),
	}
}

// Restart quits the running iTerm2 process and opens the app again.
// A process that is not running is not an error.
func (r *Restarter) Restart(ctx context.Context) error {
	if err := platform.RequireDarwin("restart"); err != nil {
		return err
	}
	if err := exec.RequireCommands("killall", "open"); err != nil {
		return err
	}
	return r.restart(ctx)
}

func (r *Restarter) restart(ctx context.Context) error {
	kill := r.run(ctx, "killall", []string{r.Process}, r.Options)
	if kill.Err != nil {
		// killall exits 1 when no process matched.
		if kill.ExitCode != 1 {
			return fmt.Errorf("stopping %s: %w", r.Process, kill.Err)
		}
		if r.Options.Logger != nil {
			r.Options.Logger.Debug("process not running", "process", r.Process)
		}
	}

	launch := r.run(ctx, "open", []string{"-a", r.App}, r.Options)
	if launch.Err != nil {
		return fmt.Errorf("launching %s: %w", r.App, launch.Err)
	}
	return nil
}
