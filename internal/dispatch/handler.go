package dispatch

// Value is an attribute value passed to handlers and guards.
type Value = any

// HandlerFunc is a free-function handler. It receives the extracted
// parameter values in registration order.
type HandlerFunc func(args ...Value) Result

// MethodFunc is an instance-bound handler. It receives the bound
// instance followed by the extracted parameter values.
type MethodFunc func(recv Value, args ...Value) Result

// Bound adapts a typed method to a MethodFunc. The adapter fails the
// dispatch if the recorded instance is not a T, which indicates a
// mismatched RecordInstance call.
func Bound[T any](fn func(recv T, args ...Value) Result) MethodFunc {
	return func(recv Value, args ...Value) Result {
		inst, ok := recv.(T)
		if !ok {
			return Failf("bound handler expects %T, instance is %T", *new(T), recv)
		}
		return fn(inst, args...)
	}
}
