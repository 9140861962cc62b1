package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prefijos de los identificadores de negocio.
const (
	PrefixProduct      = "PRD"
	PrefixMovement     = "MV"
	PrefixTransaction  = "TRX"
	PrefixNotification = "NTF"
)

// IDGenerator produce ids únicos dentro de una misma operación.
// La base combina la hora en milisegundos con un fragmento aleatorio; el contador
// distingue los ids generados en la misma llamada.
type IDGenerator struct {
	base string
	n    int
}

// NewIDGenerator crea un generador para una operación iniciada en now.
func NewIDGenerator(now time.Time) *IDGenerator {
	frag := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return &IDGenerator{base: fmt.Sprintf("%d-%s", now.UnixMilli(), frag)}
}

// Next devuelve el siguiente id con el prefijo dado, p. ej. MV-1718000000000-1a2b3c-02.
func (g *IDGenerator) Next(prefix string) string {
	g.n++
	return fmt.Sprintf("%s-%s-%02d", prefix, g.base, g.n)
}
