package handlers

// NotifyUser exposes notify to the external test package.
var NotifyUser = (*Handler).notify
