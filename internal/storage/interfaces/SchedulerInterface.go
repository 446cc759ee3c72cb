package interfaces

type SchedulerInterface interface {
	Init()
	Stop()
	Restore() error
	Persist() error
	// Close releases the snapshot compressor; call it after the final Persist.
	Close()
}
