package outwriter

import (
	"io"

	"github.com/codecity/codecity/internal/contract"
	"github.com/codecity/codecity/schema"
)

// PrintCity emits the city payload as JSON. The payload is consumed by the
// 3D renderer, so table and CSV formats do not apply.
func PrintCity(city *schema.CityScape, cfg *contract.Config) error {
	return writeView(cfg.OutputFile, func(w io.Writer) error {
		return renderJSON(w, city)
	}, "Wrote city JSON")
}
