package modelshot

// Field is an optional patch value. The zero value means "leave unchanged".
type Field[T any] struct {
	Value T
	Set   bool
}

// Some returns a Field carrying v.
func Some[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// FromPtr returns a Field that is set only when p is non-nil.
func FromPtr[T any](p *T) Field[T] {
	if p == nil {
		return Field[T]{}
	}
	return Some(*p)
}

// Or returns the patched value, or prior when the field is unset.
func (f Field[T]) Or(prior T) T {
	if f.Set {
		return f.Value
	}
	return prior
}

type (
	UserPatch struct {
		Email       Field[string]
		DisplayName Field[*string]
		AvatarURL   Field[*string]
	}

	PreferencesPatch struct {
		DefaultDeviceType      Field[DeviceType]
		DefaultBackgroundColor Field[string]
		DefaultFrameStyle      Field[FrameStyle]
		DefaultFrameColor      Field[string]
	}
)

// Empty reports whether the patch changes nothing.
func (p PreferencesPatch) Empty() bool {
	return !p.DefaultDeviceType.Set && !p.DefaultBackgroundColor.Set &&
		!p.DefaultFrameStyle.Set && !p.DefaultFrameColor.Set
}

// Apply returns prefs with the patch applied; UpdatedAt is left to the caller.
func (p PreferencesPatch) Apply(prefs Preferences) Preferences {
	prefs.DefaultDeviceType = p.DefaultDeviceType.Or(prefs.DefaultDeviceType)
	prefs.DefaultBackgroundColor = p.DefaultBackgroundColor.Or(prefs.DefaultBackgroundColor)
	prefs.DefaultFrameStyle = p.DefaultFrameStyle.Or(prefs.DefaultFrameStyle)
	prefs.DefaultFrameColor = p.DefaultFrameColor.Or(prefs.DefaultFrameColor)
	return prefs
}

// Apply returns user with the patch applied.
func (p UserPatch) Apply(user User) User {
	user.Email = p.Email.Or(user.Email)
	user.DisplayName = p.DisplayName.Or(user.DisplayName)
	user.AvatarURL = p.AvatarURL.Or(user.AvatarURL)
	return user
}
