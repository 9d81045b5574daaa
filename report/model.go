// Package report renders calculations (quotations) as PDF documents: a
// header, the groups summary, the item details, the overall totals and
// charts of the group amounts.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNoCalculation is returned for an input without a calculation.
var ErrNoCalculation = errors.New("report: empty calculation input")

// Calculation is a quotation made of groups of categories of items.
// Margins are factors: 1.1 adds ten percent to the amount and zero adds
// nothing. UserMargin is a fraction of the net total: 0.05 adds five
// percent.
type Calculation struct {
	ID           int       `yaml:"id"`
	Date         time.Time `yaml:"date"`
	Customer     string    `yaml:"customer"`
	Description  string    `yaml:"description"`
	State        string    `yaml:"state"`
	StateColor   string    `yaml:"state_color"`
	GlobalMargin float64   `yaml:"global_margin"`
	UserMargin   float64   `yaml:"user_margin"`
	Groups       []Group   `yaml:"groups"`
}

type Group struct {
	Code       string     `yaml:"code"`
	Color      string     `yaml:"color"`
	Margin     float64    `yaml:"margin"`
	Categories []Category `yaml:"categories"`
}

type Category struct {
	Code  string `yaml:"code"`
	Items []Item `yaml:"items"`
}

type Item struct {
	Description string  `yaml:"description"`
	Unit        string  `yaml:"unit"`
	Price       float64 `yaml:"price"`
	Quantity    float64 `yaml:"quantity"`
}

// LoadCalculation reads a calculation file.
func LoadCalculation(path string) (*Calculation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read calculation: %w", err)
	}
	return ParseCalculation(data)
}

// ParseCalculation decodes a YAML calculation. Unknown keys are rejected.
func ParseCalculation(data []byte) (*Calculation, error) {
	var calc Calculation
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&calc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoCalculation
		}
		return nil, fmt.Errorf("parse calculation: %w", err)
	}
	return &calc, nil
}

// Total is the price multiplied by the quantity.
func (i Item) Total() float64 { return i.Price * i.Quantity }

// Amount sums the item totals.
func (c Category) Amount() float64 {
	t := 0.0
	for _, item := range c.Items {
		t += item.Total()
	}
	return t
}

// Amount sums the category amounts.
func (g Group) Amount() float64 {
	t := 0.0
	for _, c := range g.Categories {
		t += c.Amount()
	}
	return t
}

// factor returns the margin, a zero margin meaning none.
func (g Group) factor() float64 {
	if g.Margin == 0 {
		return 1
	}
	return g.Margin
}

// MarginAmount is the part of the total added by the group margin.
func (g Group) MarginAmount() float64 { return g.Amount() * (g.factor() - 1) }

// Total is the amount with the margin applied.
func (g Group) Total() float64 { return g.Amount() + g.MarginAmount() }

// MarginPercent is the margin as a fraction: 0.1 for a 1.1 factor.
func (g Group) MarginPercent() float64 { return g.factor() - 1 }

// ItemsCount counts the items of every category.
func (g Group) ItemsCount() int {
	n := 0
	for _, c := range g.Categories {
		n += len(c.Items)
	}
	return n
}

// IsEmpty reports whether no group holds an item.
func (c *Calculation) IsEmpty() bool {
	for _, g := range c.Groups {
		if g.ItemsCount() > 0 {
			return false
		}
	}
	return true
}

// ItemsAmount sums the group amounts, before any margin.
func (c *Calculation) ItemsAmount() float64 {
	t := 0.0
	for _, g := range c.Groups {
		t += g.Amount()
	}
	return t
}

// GroupsMarginAmount sums the group margin amounts.
func (c *Calculation) GroupsMarginAmount() float64 {
	t := 0.0
	for _, g := range c.Groups {
		t += g.MarginAmount()
	}
	return t
}

// GroupsTotal sums the group totals.
func (c *Calculation) GroupsTotal() float64 { return c.ItemsAmount() + c.GroupsMarginAmount() }

// GlobalMarginAmount is added to the groups total by the global margin.
func (c *Calculation) GlobalMarginAmount() float64 {
	if c.GlobalMargin == 0 {
		return 0
	}
	return c.GroupsTotal() * (c.GlobalMargin - 1)
}

// NetTotal is the groups total with the global margin.
func (c *Calculation) NetTotal() float64 { return c.GroupsTotal() + c.GlobalMarginAmount() }

// UserMarginAmount is the user margin applied to the net total.
func (c *Calculation) UserMarginAmount() float64 { return c.NetTotal() * c.UserMargin }

// OverallTotal is the price of the calculation.
func (c *Calculation) OverallTotal() float64 { return c.NetTotal() + c.UserMarginAmount() }

// OverallMargin is the overall total divided by the items amount, minus
// one; zero for an empty calculation.
func (c *Calculation) OverallMargin() float64 {
	amount := c.ItemsAmount()
	if amount == 0 {
		return 0
	}
	return c.OverallTotal()/amount - 1
}
