package generator

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EncodeSamples writes samples as an indented JSON array with non-ASCII
// characters kept literal.
func EncodeSamples(w io.Writer, samples []Sample) error {
	if samples == nil {
		samples = []Sample{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(samples); err != nil {
		return fmt.Errorf("encode samples: %w", err)
	}
	return nil
}

// DecodeSamples reads a JSON array of samples.
func DecodeSamples(r io.Reader) ([]Sample, error) {
	var samples []Sample
	if err := json.NewDecoder(r).Decode(&samples); err != nil {
		return nil, fmt.Errorf("decode samples: %w", err)
	}
	return samples, nil
}

// WriteSamples persists samples to path through a temporary file.
func WriteSamples(path string, samples []Sample) error {
	return writeAtomic(path, func(w io.Writer) error {
		return EncodeSamples(w, samples)
	})
}

// ReadSamples loads a sample file.
func ReadSamples(path string) ([]Sample, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open samples: %w", err)
	}
	defer f.Close()
	return DecodeSamples(bufio.NewReader(f))
}

// WriteTagged persists token-level samples as JSON lines.
func WriteTagged(path string, tagged []TokenSample) error {
	return writeAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		for i, t := range tagged {
			if err := enc.Encode(t); err != nil {
				return fmt.Errorf("encode tagged sample %d: %w", i, err)
			}
		}
		return nil
	})
}

func writeAtomic(path string, write func(io.Writer) error) error {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("flush %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}
