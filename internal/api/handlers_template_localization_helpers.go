package api

func templateTranslate(messages map[string]string, key string) string {
	return translateMessage(messages, key)
}

func templateActivityLabel(messages map[string]string, level string) string {
	return translateMessage(messages, activityTranslationKey(level)+".label")
}

func templateActivityHint(messages map[string]string, level string) string {
	return translateMessage(messages, activityTranslationKey(level)+".hint")
}

func templateGenderLabel(messages map[string]string, gender string) string {
	return translateMessage(messages, genderTranslationKey(gender))
}

func templateAwardLabel(messages map[string]string, key string) string {
	return translateMessage(messages, "awards."+key+".title")
}

func templateAwardHint(messages map[string]string, key string) string {
	return translateMessage(messages, "awards."+key+".hint")
}
