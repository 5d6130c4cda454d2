package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Option interface {
	OptionName() string
	OptionString() string
	Set(s string) error
}

type BoolOption struct {
	Name  string
	Value *bool
}

func (opt *BoolOption) OptionName() string {
	return opt.Name
}

func (opt *BoolOption) OptionString() string {
	return fmt.Sprintf("option name %v type %v default %v",
		opt.Name, "check", *opt.Value)
}

func (opt *BoolOption) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*opt.Value = v
	return nil
}

type IntOption struct {
	Name  string
	Min   int
	Max   int
	Value *int
}

func (opt *IntOption) OptionName() string {
	return opt.Name
}

func (opt *IntOption) OptionString() string {
	return fmt.Sprintf("option name %v type %v default %v min %v max %v",
		opt.Name, "spin", *opt.Value, opt.Min, opt.Max)
}

func (opt *IntOption) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v < opt.Min || v > opt.Max {
		return errors.New("argument out of range")
	}
	*opt.Value = v
	return nil
}

// ComboOption holds one of a fixed set of names; Get and Apply convert to the engine setting.
type ComboOption struct {
	Name  string
	Vars  []string
	Get   func() string
	Apply func(s string) error
}

func (opt *ComboOption) OptionName() string {
	return opt.Name
}

func (opt *ComboOption) OptionString() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "option name %v type %v default %v", opt.Name, "combo", opt.Get())
	for _, v := range opt.Vars {
		fmt.Fprintf(&sb, " var %v", v)
	}
	return sb.String()
}

func (opt *ComboOption) Set(s string) error {
	for _, v := range opt.Vars {
		if strings.EqualFold(v, s) {
			return opt.Apply(v)
		}
	}
	return fmt.Errorf("bad value %v for option %v", s, opt.Name)
}
