package cmd

import (
	"fmt"

	"github.com/joshleblanc/pi-minimax/internal/pkg/version"
)

const bannerText = `
  __  __ _       _ __  __
 |  \/  (_)_ __ (_)  \/  | __ ___  __
 | |\/| | | '_ \| | |\/| |/ _' \ \/ /
 | |  | | | | | | | |  | | (_| |>  <
 |_|  |_|_|_| |_|_|_|  |_|\__,_/_/\_\

      MiniMax tools for agent hosts
`

// Banner returns the CLI banner string.
func Banner() string {
	return fmt.Sprintf("%s\n  Version: %s\n", bannerText, version.Get().String())
}
