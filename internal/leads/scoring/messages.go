package scoring

import (
	"fmt"

	"golang.org/x/text/language"
)

// Locale selects the message catalog for reasoning and suggested actions.
type Locale string

const (
	LocaleThai    Locale = "th"
	LocaleEnglish Locale = "en"
)

// DefaultLocale is used when no catalog matches the caller's preference.
const DefaultLocale = LocaleThai

// MessageKey identifies one piece of sales copy.
type MessageKey string

const (
	MsgSkinUrgent     MessageKey = "reason.skin.urgent"
	MsgSkinModerate   MessageKey = "reason.skin.moderate"
	MsgSkinPreventive MessageKey = "reason.skin.preventive"

	MsgEngagementHigh    MessageKey = "reason.engagement.high"
	MsgEngagementGood    MessageKey = "reason.engagement.good"
	MsgEngagementNurture MessageKey = "reason.engagement.nurture"

	MsgBudgetHigh     MessageKey = "reason.budget.high"
	MsgBudgetModerate MessageKey = "reason.budget.moderate"
	MsgBudgetLimited  MessageKey = "reason.budget.limited"

	MsgMultipleUrgent  MessageKey = "reason.urgent_issues"
	MsgPricingInterest MessageKey = "reason.pricing_interest"

	MsgActionCallWithinTwoHours  MessageKey = "action.call_within_2h"
	MsgActionLimitedTimeOffer    MessageKey = "action.limited_time_offer"
	MsgActionSameDayConsultation MessageKey = "action.same_day_consultation"
	MsgActionFullQuotation       MessageKey = "action.full_quotation"
	MsgActionFollowUpWithinDay   MessageKey = "action.follow_up_24h"
	MsgActionSendTreatmentInfo   MessageKey = "action.send_treatment_info"
	MsgActionInviteWorkshop      MessageKey = "action.invite_workshop"
	MsgActionOfferRemoteConsult  MessageKey = "action.remote_consult"
	MsgActionNurtureCampaign     MessageKey = "action.nurture_campaign"
	MsgActionSkincareContent     MessageKey = "action.skincare_content"
	MsgActionInviteEvents        MessageKey = "action.invite_events"
	MsgActionRecheckLater        MessageKey = "action.recheck_later"
)

var catalogs = map[Locale]map[MessageKey]string{
	LocaleThai: {
		MsgSkinUrgent:     "ผิวมีปัญหาที่ต้องได้รับการรักษาอย่างเร่งด่วน (คะแนนความต้องการ %d/%d)",
		MsgSkinModerate:   "ผิวมีปัญหาระดับปานกลาง ควรเริ่มการรักษา (คะแนนความต้องการ %d/%d)",
		MsgSkinPreventive: "ผิวอยู่ในเกณฑ์ดี เหมาะกับการดูแลเชิงป้องกัน (คะแนนความต้องการ %d/%d)",

		MsgEngagementHigh:    "ลูกค้าสนใจสูงมาก มีการโต้ตอบเชิงลึก (คะแนนความสนใจ %d/%d)",
		MsgEngagementGood:    "ลูกค้ามีระดับความสนใจดี (คะแนนความสนใจ %d/%d)",
		MsgEngagementNurture: "ลูกค้ายังต้องการการดูแลเพื่อสร้างความสนใจเพิ่มเติม (คะแนนความสนใจ %d/%d)",

		MsgBudgetHigh:     "มีศักยภาพด้านงบประมาณสูง (คะแนนงบประมาณ %d/%d)",
		MsgBudgetModerate: "งบประมาณปานกลาง เหมาะกับแพ็กเกจมาตรฐาน (คะแนนงบประมาณ %d/%d)",
		MsgBudgetLimited:  "งบประมาณจำกัด ควรเสนอตัวเลือกที่คุ้มค่า (คะแนนงบประมาณ %d/%d)",

		MsgMultipleUrgent:  "พบปัญหาเร่งด่วนหลายจุด (%d จุด) ต้องรีบรักษา",
		MsgPricingInterest: "สอบถามราคาโดยละเอียด (%d ครั้ง) แสดงถึงความพร้อมในการซื้อ",

		MsgActionCallWithinTwoHours:  "โทรติดต่อลูกค้าภายใน 2 ชั่วโมง",
		MsgActionLimitedTimeOffer:    "เสนอแพ็กเกจหรือส่วนลดพิเศษแบบจำกัดเวลา",
		MsgActionSameDayConsultation: "นัดปรึกษาแพทย์ภายในวันเดียวกัน",
		MsgActionFullQuotation:       "เตรียมใบเสนอราคาแบบครบถ้วน",
		MsgActionFollowUpWithinDay:   "ติดตามลูกค้าภายใน 24 ชั่วโมง",
		MsgActionSendTreatmentInfo:   "ส่งข้อมูลการรักษาเพิ่มเติม",
		MsgActionInviteWorkshop:      "เชิญเข้าร่วมเวิร์กช็อปหรือเว็บบินาร์",
		MsgActionOfferRemoteConsult:  "เสนอการปรึกษาผ่านแชทหรือโทรศัพท์",
		MsgActionNurtureCampaign:     "เพิ่มเข้าแคมเปญดูแลลูกค้า",
		MsgActionSkincareContent:     "ส่งเนื้อหาการดูแลผิวเป็นระยะ",
		MsgActionInviteEvents:        "เชิญร่วมกิจกรรมของคลินิก",
		MsgActionRecheckLater:        "ติดตามอีกครั้งใน 2-4 สัปดาห์",
	},
	LocaleEnglish: {
		MsgSkinUrgent:     "Urgent treatment need: skin analysis shows significant concerns (need score %d/%d)",
		MsgSkinModerate:   "Moderate treatment need: treatment is recommended (need score %d/%d)",
		MsgSkinPreventive: "Skin is in good condition: a fit for preventive care (need score %d/%d)",

		MsgEngagementHigh:    "Very high interest with deep interaction (engagement score %d/%d)",
		MsgEngagementGood:    "Good level of interest (engagement score %d/%d)",
		MsgEngagementNurture: "Interest still needs nurturing (engagement score %d/%d)",

		MsgBudgetHigh:     "High budget potential (budget score %d/%d)",
		MsgBudgetModerate: "Moderate budget, fits a standard package (budget score %d/%d)",
		MsgBudgetLimited:  "Limited budget, offer value options (budget score %d/%d)",

		MsgMultipleUrgent:  "Multiple urgent issues (%d) need fast treatment",
		MsgPricingInterest: "Asked about pricing in detail (%d inquiries), signalling purchase readiness",

		MsgActionCallWithinTwoHours:  "Call the customer within 2 hours",
		MsgActionLimitedTimeOffer:    "Offer a limited-time package or discount",
		MsgActionSameDayConsultation: "Book a same-day consultation",
		MsgActionFullQuotation:       "Prepare a full quotation",
		MsgActionFollowUpWithinDay:   "Follow up within 24 hours",
		MsgActionSendTreatmentInfo:   "Send additional treatment information",
		MsgActionInviteWorkshop:      "Invite to a workshop or webinar",
		MsgActionOfferRemoteConsult:  "Offer a consultation via chat or phone",
		MsgActionNurtureCampaign:     "Add to the nurture campaign",
		MsgActionSkincareContent:     "Send periodic skincare content",
		MsgActionInviteEvents:        "Invite to clinic events",
		MsgActionRecheckLater:        "Check in again in 2-4 weeks",
	},
}

var (
	supportedLocales = []Locale{LocaleThai, LocaleEnglish}
	localeMatcher    = language.NewMatcher([]language.Tag{language.Thai, language.English})
)

// ResolveLocale picks the best catalog for an Accept-Language header value.
func ResolveLocale(acceptLanguage string) Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	return supportedLocales[idx]
}

// ParseLocale returns the locale named by s, or DefaultLocale.
func ParseLocale(s string) Locale {
	if _, ok := catalogs[Locale(s)]; ok {
		return Locale(s)
	}
	return ResolveLocale(s)
}

func (k MessageKey) known() bool {
	_, ok := catalogs[DefaultLocale][k]
	return ok
}

// text renders key in locale, formatting args when the copy takes any.
func (l Locale) text(key MessageKey, args ...any) string {
	catalog, ok := catalogs[l]
	if !ok {
		catalog = catalogs[DefaultLocale]
	}
	format, ok := catalog[key]
	if !ok {
		return string(key)
	}
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
