package wavetrace

import (
	"fmt"
	"os"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// CSVWriter stores signal samples in a CSV file.
type CSVWriter struct {
	path string
	file *os.File

	samples    []Sample
	bufferSize int
}

// NewCSVWriter creates a CSVWriter that writes to the given path (without the
// .csv suffix). An empty path picks a unique name.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// Init creates the trace file. Init refuses to overwrite an existing file.
func (w *CSVWriter) Init() {
	if w.path == "" {
		w.path = "rwmem_trace_" + xid.New().String()
	}

	filename := w.path + ".csv"
	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	file, err := os.Create(filename)
	if err != nil {
		panic(err)
	}
	w.file = file

	fmt.Fprintf(file,
		"Cycle, Address, Data, WriteEnable, ReadData, Ack, Error\n")

	atexit.Register(func() {
		w.Flush()
		err := w.file.Close()
		if err != nil {
			panic(err)
		}
	})
}

// Write buffers one sample.
func (w *CSVWriter) Write(s Sample) {
	w.samples = append(w.samples, s)

	if len(w.samples) >= w.bufferSize {
		w.Flush()
	}
}

// Flush writes all buffered samples to the file.
func (w *CSVWriter) Flush() {
	for _, s := range w.samples {
		fmt.Fprintf(w.file, "%d, %d, %d, %s, %d, %s, %s\n",
			s.Cycle, s.Address, s.Data,
			bit(s.WriteEnable), s.ReadData, bit(s.Ack), bit(s.Error))
	}

	w.samples = nil
}

func bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
