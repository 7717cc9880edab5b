package models

import "github.com/Dton04/deployBEHotel/constants"

// MembershipLevelForPoints suy ra cấp độ thành viên từ điểm tích lũy.
// Cấp độ không được lưu, luôn tính lại từ điểm.
func MembershipLevelForPoints(points int64) string {
	switch {
	case points >= 400000:
		return constants.MembershipDiamond
	case points >= 300000:
		return constants.MembershipPlatinum
	case points >= 200000:
		return constants.MembershipGold
	case points >= 100000:
		return constants.MembershipSilver
	default:
		return constants.MembershipBronze
	}
}

// ValidMembershipLevel kiểm tra tên cấp độ hợp lệ
func ValidMembershipLevel(level string) bool {
	switch level {
	case constants.MembershipBronze, constants.MembershipSilver, constants.MembershipGold,
		constants.MembershipPlatinum, constants.MembershipDiamond:
		return true
	}
	return false
}
