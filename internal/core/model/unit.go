package model

import (
	"fmt"
	"strings"
)

// Unit 數量單位，固定 13 個成員的封閉枚舉
// 任何不在此列表中的值都視為驗證失敗
type Unit string

const (
	UnitGram       Unit = "G"
	UnitKilogram   Unit = "KG"
	UnitMilliliter Unit = "ML"
	UnitLiter      Unit = "L"
	UnitPiece      Unit = "PCS"
	UnitTablespoon Unit = "TBSP"
	UnitTeaspoon   Unit = "TSP"
	UnitCup        Unit = "CUP"
	UnitOunce      Unit = "OZ"
	UnitPound      Unit = "LB"
	UnitSlice      Unit = "SLICE"
	UnitPinch      Unit = "PINCH"
	UnitOther      Unit = "OTHER"
)

// AllUnits 枚舉的全部成員，依 schema 宣告順序
var AllUnits = []Unit{
	UnitGram, UnitKilogram, UnitMilliliter, UnitLiter,
	UnitPiece, UnitTablespoon, UnitTeaspoon, UnitCup,
	UnitOunce, UnitPound, UnitSlice, UnitPinch, UnitOther,
}

// Valid 檢查單位是否為枚舉成員
func (u Unit) Valid() bool {
	for _, v := range AllUnits {
		if u == v {
			return true
		}
	}
	return false
}

// ParseUnit 解析單位字串（不區分大小寫）
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToUpper(strings.TrimSpace(s)))
	if !u.Valid() {
		return "", fmt.Errorf("invalid unit type: %s", s)
	}
	return u, nil
}

// UnitNames 枚舉成員的字串列表，用於組裝 prompt 與錯誤訊息
func UnitNames() []string {
	names := make([]string, len(AllUnits))
	for i, u := range AllUnits {
		names[i] = string(u)
	}
	return names
}
