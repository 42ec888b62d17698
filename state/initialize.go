package state

import (
	"time"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		// classic torn-photo pictogram, rasterized when an image cannot be
		// fetched and configuration asks for visible placeholders
		BrokenImage: []byte(`<svg viewBox="0 0 160 120" xmlns="http://www.w3.org/2000/svg">
  <path d="
    M8 8 H152 V76 L134 94 L120 82 L104 98 V112 H8 Z
  "
  fill="none" stroke="black" stroke-width="3"/>
  <circle cx="44" cy="38" r="12" fill="none" stroke="black" stroke-width="3"/>
  <path d="
    M20 96
    L52 62
    L74 84
    L94 60
    L112 78
  "
  fill="none" stroke="black" stroke-width="3"/>
  <path d="
    M152 76 L140 88 L128 78 L116 92 L104 82 L104 112 H152 Z
  "
  fill="none" stroke="black" stroke-width="2" stroke-dasharray="5 4"/>
</svg>`),
	}
}
