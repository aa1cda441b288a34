package domain

type DevicePlatform string

const (
	DevicePlatformAndroid DevicePlatform = "ANDROID"
	DevicePlatformIOS     DevicePlatform = "IOS"
)

type DeviceToken struct {
	ID       int32          `json:"id"`
	UserID   int32          `json:"user_id"`
	Token    string         `json:"token"`
	Platform DevicePlatform `json:"platform"`
}
