package shorts

import (
	"regexp"
	"strconv"
)

// Components are matched one by one so a garbled part does not hide the others.
var (
	hoursRE   = regexp.MustCompile(`(\d+)H`)
	minutesRE = regexp.MustCompile(`(\d+)M`)
	secondsRE = regexp.MustCompile(`(\d+)S`)
)

// ParseDuration converts an ISO 8601 duration token such as "PT1H2M3S" into
// total seconds. Empty or unparseable input yields 0.
func ParseDuration(token string) int {
	if len(token) < 2 || token[:2] != "PT" {
		return 0
	}
	body := token[2:]

	return component(hoursRE, body)*3600 +
		component(minutesRE, body)*60 +
		component(secondsRE, body)
}

func component(re *regexp.Regexp, s string) int {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
