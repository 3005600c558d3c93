package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/younwookim/puppet/internal/application/snapshot"
)

func writeSchema(w io.Writer) error {
	data, err := json.MarshalIndent(snapshot.Schema(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	return nil
}
