package interfaces

//go:generate mockgen -source=notifier_interface.go -destination=mocks/notifier_interface_mock.go -package=mock_interfaces

import (
	"context"

	"quote3d/internal/domain/entities"
)

// INotifier delivers transient user-facing notifications. It is passed
// explicitly to the call sites that emit them.
type INotifier interface {
	Notify(ctx context.Context, n entities.Notification)
}
