package editor

import (
	"fmt"

	"github.com/neovim/go-client/nvim"
)

// handOff connects to the Neovim instance listening on socket and opens the
// file in a new tab there.
func handOff(socket, file string) error {
	v, err := nvim.Dial(socket)
	if err != nil {
		return fmt.Errorf("dial nvim at %s: %w", socket, err)
	}
	defer v.Close()

	if err := v.Command("tabedit " + file); err != nil {
		return fmt.Errorf("open %s in nvim: %w", file, err)
	}
	return nil
}
