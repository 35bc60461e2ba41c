package domain

// LiveBufferCapacity is the number of records kept in the live view.
const LiveBufferCapacity = 20

// LiveBuffer is a fixed-capacity ring holding the most recent records,
// newest first. Pushing into a full buffer evicts the oldest record.
//
// LiveBuffer is not safe for concurrent use; its owner serializes access.
type LiveBuffer struct {
	records [LiveBufferCapacity]SensorRecord
	head    int
	size    int
}

func NewLiveBuffer() *LiveBuffer {
	return &LiveBuffer{}
}

func (b *LiveBuffer) Push(record SensorRecord) {
	b.head = (b.head - 1 + LiveBufferCapacity) % LiveBufferCapacity
	b.records[b.head] = record
	if b.size < LiveBufferCapacity {
		b.size++
	}
}

func (b *LiveBuffer) Len() int {
	return b.size
}

func (b *LiveBuffer) Reset() {
	b.records = [LiveBufferCapacity]SensorRecord{}
	b.head = 0
	b.size = 0
}

// Snapshot copies the buffered records, newest first.
func (b *LiveBuffer) Snapshot() []SensorRecord {
	out := make([]SensorRecord, 0, b.size)
	for i := 0; i < b.size; i++ {
		out = append(out, b.records[(b.head+i)%LiveBufferCapacity])
	}
	return out
}
