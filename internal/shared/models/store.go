package models

import (
	"time"

	"github.com/google/uuid"
)

// Brand - бренд устройства.
type Brand struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// DeviceType - тип устройства (смартфон, холодильник и т.д.).
type DeviceType struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Device - товар каталога магазина.
type Device struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Price       int             `json:"price"`
	Rating      float64         `json:"rating"`
	RatingCount int             `json:"ratingCount"`
	ImgPath     string          `json:"img"`
	BrandID     uuid.UUID       `json:"brandId"`
	TypeID      uuid.UUID       `json:"typeId"`
	Info        []DeviceInfo    `json:"info,omitempty"`
	Comments    []DeviceComment `json:"comments,omitempty"`
}

// DeviceInfo - характеристика устройства.
type DeviceInfo struct {
	ID          uuid.UUID `json:"id"`
	DeviceID    uuid.UUID `json:"deviceId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

// DeviceComment - отзыв пользователя об устройстве.
type DeviceComment struct {
	ID        uuid.UUID `json:"id"`
	DeviceID  uuid.UUID `json:"deviceId"`
	UserID    uuid.UUID `json:"userId"`
	Username  string    `json:"username"`
	Feedback  string    `json:"feedback"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// DevicePage - страница устройств с общим количеством для пагинации.
type DevicePage struct {
	Count int64    `json:"count"`
	Rows  []Device `json:"rows"`
}

// Basket - корзина пользователя.
type Basket struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"userId"`
	TotalCost int            `json:"totalCost"`
	Devices   []BasketDevice `json:"devices,omitempty"`
}

// BasketDevice - позиция корзины.
type BasketDevice struct {
	ID       uuid.UUID `json:"id"`
	BasketID uuid.UUID `json:"basketId"`
	DeviceID uuid.UUID `json:"deviceId"`
}
