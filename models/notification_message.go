// models/notification_message.go - message catalog keyed by notification type
package models

var notificationMessages = map[NotificationType]string{
	NotificationTypeSurvey:      "It's been a while! Update your body measurements to keep your crew stats fresh.",
	NotificationTypeBattleStart: "A new crew battle has started. Let's move!",
	NotificationTypeBattleEnd:   "The crew battle is over. Check the results!",
}

var notificationTitles = map[NotificationType]string{
	NotificationTypeSurvey:      "Body survey reminder",
	NotificationTypeBattleStart: "Battle alert",
	NotificationTypeBattleEnd:   "Battle alert",
}

// MessageFor returns the fixed message text for t, or "" for an unknown type.
func MessageFor(t NotificationType) string {
	return notificationMessages[t]
}

// TitleFor returns the push title for t.
func TitleFor(t NotificationType) string {
	return notificationTitles[t]
}

// BattleNotificationType picks the battle event type matching a persisted battle status.
func BattleNotificationType(status BattleStatus) NotificationType {
	if status == BattleStatusStarted {
		return NotificationTypeBattleStart
	}
	return NotificationTypeBattleEnd
}
