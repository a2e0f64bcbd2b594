package service

// Actor 每個操作都由呼叫端明確傳入, 不從全域context解析身份
type Actor struct {
	UserID        uint
	IsAdmin       bool
	Authenticated bool
}

var AnonymousActor = Actor{}

// 逐操作的能力檢查, 取代以action名稱分派的宣告式權限表

func CanCreateProduct(actor Actor) bool {
	return actor.Authenticated && actor.IsAdmin
}

func CanUpdateProduct(actor Actor) bool {
	return actor.Authenticated && actor.IsAdmin
}

func CanDeleteProduct(actor Actor) bool {
	return actor.Authenticated && actor.IsAdmin
}

func CanCreateReview(actor Actor) bool {
	return actor.Authenticated
}

// CanModifyReview - 評論僅作者本人或管理員可修改/刪除
func CanModifyReview(actor Actor, authorID uint) bool {
	if !actor.Authenticated {
		return false
	}
	return actor.IsAdmin || actor.UserID == authorID
}

func CanCreateOrder(actor Actor) bool {
	return actor.Authenticated
}

// CanViewOrder - 訂單僅訂單擁有者或管理員可見
func CanViewOrder(actor Actor, ownerID uint) bool {
	if !actor.Authenticated {
		return false
	}
	return actor.IsAdmin || actor.UserID == ownerID
}

// CanModifyOrderItems - 品項增減僅限訂單擁有者
func CanModifyOrderItems(actor Actor, ownerID uint) bool {
	return actor.Authenticated && actor.UserID == ownerID
}

// CanSetOrderStatus - 狀態變更為擁有者或管理員
func CanSetOrderStatus(actor Actor, ownerID uint) bool {
	if !actor.Authenticated {
		return false
	}
	return actor.IsAdmin || actor.UserID == ownerID
}

func CanDeleteOrder(actor Actor, ownerID uint) bool {
	if !actor.Authenticated {
		return false
	}
	return actor.IsAdmin || actor.UserID == ownerID
}
