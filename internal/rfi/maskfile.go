// SPDX-License-Identifier: MIT
package rfi

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Flag mask files carry one product's mask: a single text header line
//
//	DWFLAG1 <algorithm> <label> <name> <rows> <cols>
//
// followed by rows*cols raw mask bytes, row-major.
const maskMagic = "DWFLAG1"

// WriteFile writes the flag set's mask to path.
func (f *FlagSet) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rfi: failed to create mask file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "%s %s %d %s %d %d\n",
		maskMagic, f.Algorithm, f.Product.Label, f.Product.Name, f.Rows, f.Cols)
	if _, err := w.Write(f.Mask); err != nil {
		return fmt.Errorf("rfi: failed to write mask data: %w", err)
	}
	return w.Flush()
}

// ReadMaskFile reads a flag mask file written by WriteFile.
func ReadMaskFile(path string) (*FlagSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rfi: failed to open mask file: %w", err)
	}
	defer file.Close()

	r := bufio.NewReader(file)
	header, err := r.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("rfi: failed to read mask header: %w", err)
	}

	var magic string
	f := &FlagSet{}
	_, err = fmt.Sscanf(header, "%s %s %d %s %d %d",
		&magic, &f.Algorithm, &f.Product.Label, &f.Product.Name, &f.Rows, &f.Cols)
	if err != nil || magic != maskMagic {
		return nil, fmt.Errorf("rfi: malformed mask header %q", header)
	}
	if f.Rows <= 0 || f.Cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d in mask header", ErrInvalidShape, f.Rows, f.Cols)
	}

	f.Mask = make([]byte, f.Rows*f.Cols)
	if _, err := io.ReadFull(r, f.Mask); err != nil {
		return nil, fmt.Errorf("rfi: truncated mask data: %w", err)
	}
	return f, nil
}
