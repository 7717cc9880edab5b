package models

import (
	"testing"

	"github.com/Dton04/deployBEHotel/constants"
)

func TestMembershipLevelForPoints(t *testing.T) {
	tests := []struct {
		points int64
		want   string
	}{
		{0, constants.MembershipBronze},
		{99999, constants.MembershipBronze},
		{100000, constants.MembershipSilver},
		{199999, constants.MembershipSilver},
		{200000, constants.MembershipGold},
		{299999, constants.MembershipGold},
		{300000, constants.MembershipPlatinum},
		{399999, constants.MembershipPlatinum},
		{400000, constants.MembershipDiamond},
		{1000000, constants.MembershipDiamond},
	}

	for _, tt := range tests {
		if got := MembershipLevelForPoints(tt.points); got != tt.want {
			t.Fatalf("MembershipLevelForPoints(%d) = %s, muốn %s", tt.points, got, tt.want)
		}
	}
}

func TestValidMembershipLevel(t *testing.T) {
	if !ValidMembershipLevel(constants.MembershipDiamond) {
		t.Fatal("Diamond phải hợp lệ")
	}
	if ValidMembershipLevel("Titanium") {
		t.Fatal("cấp độ lạ phải bị từ chối")
	}
}
