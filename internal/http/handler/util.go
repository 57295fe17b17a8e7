package handler

import (
	"strconv"

	"onboardly.app/portal/common/id"
)

func formatID(v int64) string {
	return strconv.FormatInt(v, 10)
}

func parseID(raw string) (int64, bool) {
	v, err := id.Parse(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
