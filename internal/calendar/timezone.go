package calendar

import "strings"

// TimeZoneOption один пункт кураторского списка часовых поясов.
type TimeZoneOption struct {
	Name string
	Zone string
}

// TZGroups кураторский список поясов по регионам.
// Порядок внутри группы важен: первый пояс — фолбэк региона.
var TZGroups = map[string][]TimeZoneOption{
	"America": {
		{Name: "Pacific Time", Zone: "America/Los_Angeles"},
		{Name: "Mountain Time", Zone: "America/Denver"},
		{Name: "Central Time", Zone: "America/Chicago"},
		{Name: "Eastern Time", Zone: "America/New_York"},
		{Name: "Alaska Time", Zone: "America/Anchorage"},
		{Name: "Arizona Time", Zone: "America/Phoenix"},
	},
	"Europe": {
		{Name: "Central European Time", Zone: "Europe/Paris"},
		{Name: "Eastern European Time", Zone: "Europe/Helsinki"},
		{Name: "UK / Ireland Time", Zone: "Europe/London"},
		{Name: "Turkey Time", Zone: "Europe/Istanbul"},
	},
	"Asia": {
		{Name: "Japan / Korea Time", Zone: "Asia/Tokyo"},
		{Name: "China / Singapore", Zone: "Asia/Shanghai"},
		{Name: "India Time", Zone: "Asia/Kolkata"},
	},
	"Australia": {
		{Name: "Sydney / Melbourne", Zone: "Australia/Sydney"},
		{Name: "Perth Time", Zone: "Australia/Perth"},
	},
	"Africa": {
		{Name: "West Africa Time", Zone: "Africa/Lagos"},
		{Name: "Central Africa Time", Zone: "Africa/Johannesburg"},
	},
	"Pacific": {
		{Name: "Hawaii Time", Zone: "Pacific/Honolulu"},
		{Name: "Fiji Time", Zone: "Pacific/Fiji"},
	},
}

// ResolveTimeZone подбирает ближайший пояс из кураторского списка.
// Точное совпадение внутри региона — берём его; иначе первый пояс того же
// региона; для неизвестного региона возвращаем пояс устройства как есть.
func ResolveTimeZone(deviceZone string) string {
	region, _, ok := strings.Cut(deviceZone, "/")
	if !ok {
		return deviceZone
	}

	group, exists := TZGroups[region]
	if !exists {
		return deviceZone
	}

	for _, opt := range group {
		if opt.Zone == deviceZone {
			return deviceZone
		}
	}

	return group[0].Zone
}
