package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Component(name string) Field {
	return String("component", name)
}

// Plot graph fields

func Character(name string) Field {
	return String("character", name)
}

func VertexID(id uint64) Field {
	return Field{Key: "vertex_id", Value: id}
}

func Label(label string) Field {
	return String("label", label)
}

func VertexType(t string) Field {
	return String("vertex_type", t)
}

func Unit(name string) Field {
	return String("unit", name)
}

func Step(step int) Field {
	return Int("step", step)
}

func RunID(id string) Field {
	return String("run_id", id)
}

func Count(n int) Field {
	return Int("count", n)
}
