// Package cache models a single-level set-associative cache with a pluggable
// coherence protocol.
package cache

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"os"
	"strings"
)

// AddressBits is the width of the simulated physical address space.
const AddressBits = 32

// Protocol selects the coherence state machine a cache runs.
type Protocol int

// Supported protocols.
const (
	ProtocolNone Protocol = iota
	ProtocolVI
	ProtocolMSI
)

var protocolNames = map[Protocol]string{
	ProtocolNone: "none",
	ProtocolVI:   "vi",
	ProtocolMSI:  "msi",
}

func (p Protocol) String() string {
	if name, ok := protocolNames[p]; ok {
		return name
	}

	return fmt.Sprintf("protocol(%d)", int(p))
}

// ParseProtocol converts a protocol name ("none", "vi", "msi") into a Protocol.
func ParseProtocol(name string) (Protocol, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for p, n := range protocolNames {
		if n == lower {
			return p, nil
		}
	}

	return 0, &ProtocolError{Name: name}
}

// MarshalJSON writes the protocol as its name.
func (p Protocol) MarshalJSON() ([]byte, error) {
	if _, ok := protocolNames[p]; !ok {
		return nil, &ProtocolError{Protocol: p}
	}

	return json.Marshal(p.String())
}

// UnmarshalJSON reads the protocol from its name.
func (p *Protocol) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("protocol must be a string: %w", err)
	}

	parsed, err := ParseProtocol(name)
	if err != nil {
		return err
	}

	*p = parsed

	return nil
}

// Config holds cache configuration parameters.
type Config struct {
	// Capacity in bytes
	Capacity int `json:"capacity"`
	// BlockSize in bytes (cache line size)
	BlockSize int `json:"block_size"`
	// Associativity (number of ways per set)
	Associativity int `json:"associativity"`
	// Protocol is the coherence protocol the cache runs.
	Protocol Protocol `json:"protocol"`
	// LRUOnInvalidate points the replacement pointer at a way that a remote
	// notification has just invalidated.
	LRUOnInvalidate bool `json:"lru_on_invalidate"`
}

// DefaultConfig returns a 256B, 2-way cache with 32B lines and no coherence.
func DefaultConfig() Config {
	return Config{
		Capacity:      256,
		BlockSize:     32,
		Associativity: 2,
		Protocol:      ProtocolNone,
	}
}

// WithLog2Sizes returns c with 2^logCapacity bytes of capacity, 2^logBlockSize
// byte blocks and assoc ways. Exponents outside the address space give a zero
// size, which Validate rejects.
func (c Config) WithLog2Sizes(logCapacity, logBlockSize, assoc int) Config {
	c.Capacity = pow2(logCapacity)
	c.BlockSize = pow2(logBlockSize)
	c.Associativity = assoc

	return c
}

// Geometry holds the values derived from a Config. They are fixed for the
// lifetime of a cache.
type Geometry struct {
	NumSets    int
	OffsetBits int
	IndexBits  int
	TagBits    int
}

// Validate checks that the sizes describe a power-of-two cache and that the
// protocol is known.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Param: "capacity", Value: c.Capacity, Reason: "must be > 0"}
	}
	if !isPowerOfTwo(c.BlockSize) {
		return &ConfigError{Param: "block_size", Value: c.BlockSize, Reason: "must be a positive power of two"}
	}
	if !isPowerOfTwo(c.Associativity) {
		return &ConfigError{Param: "associativity", Value: c.Associativity, Reason: "must be a positive power of two"}
	}

	setBytes := c.BlockSize * c.Associativity
	if c.Capacity%setBytes != 0 {
		return &ConfigError{
			Param:  "capacity",
			Value:  c.Capacity,
			Reason: fmt.Sprintf("must be a multiple of block_size*associativity (%d)", setBytes),
		}
	}

	numSets := c.Capacity / setBytes
	if !isPowerOfTwo(numSets) {
		return &ConfigError{Param: "sets", Value: numSets, Reason: "must be a power of two"}
	}

	if log2(c.BlockSize)+log2(numSets) > AddressBits {
		return &ConfigError{
			Param:  "capacity",
			Value:  c.Capacity,
			Reason: fmt.Sprintf("offset and index bits exceed the %d-bit address", AddressBits),
		}
	}

	if _, ok := protocolNames[c.Protocol]; !ok {
		return &ConfigError{
			Param:  "protocol",
			Value:  int(c.Protocol),
			Reason: "unsupported",
			Err:    &ProtocolError{Protocol: c.Protocol},
		}
	}

	return nil
}

// Geometry derives set count and bit-field widths. The config must be valid.
func (c Config) Geometry() Geometry {
	numSets := c.Capacity / (c.BlockSize * c.Associativity)
	offsetBits := log2(c.BlockSize)
	indexBits := log2(numSets)

	return Geometry{
		NumSets:    numSets,
		OffsetBits: offsetBits,
		IndexBits:  indexBits,
		TagBits:    AddressBits - indexBits - offsetBits,
	}
}

// LoadConfig loads a Config from a JSON file. Fields missing from the file
// keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read cache config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse cache config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize cache config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache config file: %w", err)
	}

	return nil
}

func isPowerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}

func pow2(exp int) int {
	if exp < 0 || exp > AddressBits {
		return 0
	}

	return 1 << exp
}

func log2(v int) int {
	return bits.TrailingZeros(uint(v))
}
