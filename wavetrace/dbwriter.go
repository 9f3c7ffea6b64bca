package wavetrace

import "github.com/sarchlab/rwmem/datarecording"

const dbTableName = "signal_trace"

// DBWriter stores signal samples with a DataRecorder.
type DBWriter struct {
	recorder datarecording.DataRecorder
}

// NewDBWriter creates a DBWriter on top of the given recorder.
func NewDBWriter(recorder datarecording.DataRecorder) *DBWriter {
	recorder.CreateTable(dbTableName, Sample{})

	return &DBWriter{recorder: recorder}
}

// Write stores one sample.
func (w *DBWriter) Write(s Sample) {
	w.recorder.InsertData(dbTableName, s)
}

// Flush writes all buffered samples into the database.
func (w *DBWriter) Flush() {
	w.recorder.Flush()
}
