// Package apps wires the packages under internal/pkg into runnable applications.
package apps

import "context"

// App is an application started by a command.
type App interface {
	Run(ctx context.Context, args []string) error
}
