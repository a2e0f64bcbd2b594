package constants

const (
	//分頁
	DefaultPagingSize int = 10
	DefaultPaging     int = 1
	MaxPagingSize     int = 100
)

// for api auth
type ContextKey string

const (
	AuthorizationHeaderKey  ContextKey = "authorization"
	AuthorizationTypeBearer ContextKey = "bearer"
	AuthorizationPayloadKey ContextKey = "authorization_payload"
)

type TokenDurationHour int

const (
	AccessTokenDuration TokenDurationHour = 24
)

type RequestID string

const (
	RequestIDKey RequestID = "request_id"
)

// 商品列表允許的排序欄位
var ProductOrderingFields = map[string]struct{}{
	"title": {},
	"price": {},
}
