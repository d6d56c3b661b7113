package events

import "reflect"

// ExtractRoomID returns the RoomID field of an event, or "" if it has none.
func ExtractRoomID(event Event) string {
	return stringField(event, "RoomID")
}

// ExtractTarget returns the Handle of the single recipient of a targeted
// event. Broadcast events have no Handle field and yield "".
func ExtractTarget(event Event) string {
	return stringField(event, "Handle")
}

func stringField(event Event, name string) string {
	val := reflect.ValueOf(event)

	// If it's a pointer, get the underlying element
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return ""
		}
		val = val.Elem()
	}

	if val.Kind() == reflect.Struct {
		field := val.FieldByName(name)
		if field.IsValid() && field.Kind() == reflect.String {
			return field.String()
		}
	}

	return ""
}
