package domain

import "encoding/json"

// Contact 紧急联系人（临时对象）
// 从 users.emergency_contacts 字段按需解析，无独立主键、不单独持久化
type Contact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Relation string `json:"relation"`
}

// ParseContacts 解析序列化的紧急联系人列表
// 输入为空或解析失败时返回空列表（软失败，报警降级为无接收人）
// 第二个返回值标记解析是否失败，调用方可据此记录告警日志
func ParseContacts(raw string) ([]Contact, bool) {
	if raw == "" {
		return []Contact{}, true
	}
	var contacts []Contact
	if err := json.Unmarshal([]byte(raw), &contacts); err != nil {
		return []Contact{}, false
	}
	if contacts == nil {
		contacts = []Contact{}
	}
	return contacts, true
}
