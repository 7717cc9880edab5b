package constants

// Booking status
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCanceled  = "canceled"
)

// Payment status
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusCanceled = "canceled"
)

// Payment method
const (
	PaymentMethodCash          = "cash"
	PaymentMethodCreditCard    = "credit_card"
	PaymentMethodBankTransfer  = "bank_transfer"
	PaymentMethodMobilePayment = "mobile_payment"
	PaymentMethodVNPay         = "vnpay"
)

// Room availability status
const (
	RoomStatusAvailable   = "available"
	RoomStatusMaintenance = "maintenance"
	RoomStatusBusy        = "busy"
)

// Discount type
const (
	DiscountTypeVoucher     = "voucher"
	DiscountTypeFestival    = "festival"
	DiscountTypeMember      = "member"
	DiscountTypeAccumulated = "accumulated"
)

// Discount value type
const (
	DiscountValuePercentage = "percentage"
	DiscountValueFixed      = "fixed"
)

// Loyalty transaction type
const (
	TransactionTypeEarn             = "earn"
	TransactionTypeRedeem           = "redeem"
	TransactionTypeRewardRedemption = "reward_redemption"
)

// Loyalty transaction status
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

// Membership level
const (
	MembershipBronze   = "Bronze"
	MembershipSilver   = "Silver"
	MembershipGold     = "Gold"
	MembershipPlatinum = "Platinum"
	MembershipDiamond  = "Diamond"
)

// User role
const (
	RoleUser  = 0
	RoleStaff = 1
	RoleAdmin = 2
)

// Thời hạn thanh toán cho đặt phòng chuyển khoản (phút)
const BankTransferDeadlineMinutes = 5
