package profile

// Reduce maps the current record and an action to the next record.
// It is pure and total: unknown action kinds return current unchanged.
func Reduce(current UserProfile, action Action) UserProfile {
	switch action.Kind {
	case ActionChangeUser:
		return changeUser(current, action.Payload)
	default:
		return current
	}
}

// changeUser keeps current when the payload describes the account already stored,
// otherwise it normalizes the payload into a new record.
func changeUser(current UserProfile, payload Payload) UserProfile {
	if current.Username != "" && current.Username == payload.Login {
		return current
	}

	return UserProfile{
		Name:       payload.Name,
		AvatarURL:  payload.AvatarURL,
		ProfileURL: payload.HTMLURL,
		Username:   payload.Login,
	}
}
