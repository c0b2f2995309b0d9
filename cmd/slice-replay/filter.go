package main

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/bearpark/bear-slice/event"
)

// parseFilter turns a comma-separated list of notification names into a set
// An empty list selects everything and yields a nil set
func parseFilter(list string) (map[event.EventType]bool, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return nil, nil
	}
	set := make(map[event.EventType]bool)
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		et, ok := event.LookupType(name)
		if !ok {
			return nil, errors.Errorf("unknown notification %q", name)
		}
		set[et] = true
	}
	return set, nil
}
