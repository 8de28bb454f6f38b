package ports

import (
	"context"

	"github.com/alejandrodnm/venicebot/internal/domain"
)

// Notifier presenta el resultado de cada ciclo al usuario.
type Notifier interface {
	// Notify muestra el report del tick: mejor path, ranking y spread.
	// En la implementación de consola, imprime una tabla formateada.
	Notify(ctx context.Context, report domain.Report) error
}
