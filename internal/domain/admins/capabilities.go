package admins

// Capabilities an admin session can carry.
const (
	CapEditEvents   = "events:write"
	CapManageImages = "images:write"
	CapManageAdmins = "admins:write"
	CapViewAdmins   = "admins:read"
)

// CapabilitiesFor lists what the console should offer a. Super-admins are the
// only ones who can change the allowlist.
func CapabilitiesFor(a *AllowedAdmin) []string {
	if a == nil {
		return []string{}
	}
	caps := []string{CapEditEvents, CapManageImages, CapViewAdmins}
	if a.IsSuperAdmin {
		caps = append(caps, CapManageAdmins)
	}
	return caps
}
