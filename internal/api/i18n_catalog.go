package api

var errorKeys = map[string]string{
	"invalid stats input":             "errors.invalid_stats_input",
	"invalid calories":                "errors.invalid_calories",
	"invalid onboarding input":        "errors.invalid_onboarding_input",
	"failed to save stats":            "errors.save_stats_failed",
	"failed to log calories":          "errors.log_calories_failed",
	"failed to save profile":          "errors.save_profile_failed",
	"failed to save onboarding draft": "errors.save_draft_failed",
	"onboarding is incomplete":        "errors.onboarding_incomplete",
	"not found":                       "not_found.title",
}

var weekdayShortNames = map[string][]string{
	"en": {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	"ru": {"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"},
}

var monthShortNames = map[string][]string{
	"en": {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	"ru": {"Янв", "Фев", "Мар", "Апр", "Май", "Июн", "Июл", "Авг", "Сен", "Окт", "Ноя", "Дек"},
}
