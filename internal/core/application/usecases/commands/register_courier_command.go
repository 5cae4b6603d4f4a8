package commands

import (
	"errors"

	"foodbot/internal/core/domain/model/kernel"
	"foodbot/internal/pkg/errs"
	"foodbot/internal/pkg/guard"
)

var ErrRegisterCourierCommandIsNotConstructed = errors.New(
	"RegisterCourierCommand must be created via NewRegisterCourierCommand constructor",
)

// RegisterCourierCommand enrolls a chat user on the courier roster.
type RegisterCourierCommand struct { //nolint:recvcheck //using for validation
	adminID int64
	chatID  int64
	name    string
	phone   kernel.Phone

	guard guard.ConstructorGuard
}

// NewRegisterCourierCommand creates a command to enroll a courier.
func NewRegisterCourierCommand(adminID, chatID int64, name string, phone kernel.Phone) (RegisterCourierCommand, error) {
	cmd := RegisterCourierCommand{
		guard: guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		cmd.setAdminID(adminID),
		cmd.setChatID(chatID),
		cmd.setName(name),
		cmd.setPhone(phone),
	); err != nil {
		return RegisterCourierCommand{}, err
	}
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterCourierCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCourierCommandIsNotConstructed)
}

// AdminID returns the enrolling operator's chat actor id.
func (c RegisterCourierCommand) AdminID() int64 {
	return c.adminID
}

// ChatID returns the new courier's chat actor id.
func (c RegisterCourierCommand) ChatID() int64 {
	return c.chatID
}

// Name returns the new courier's display name.
func (c RegisterCourierCommand) Name() string {
	return c.name
}

// Phone returns the new courier's contact number.
func (c RegisterCourierCommand) Phone() kernel.Phone {
	return c.phone
}

func (c *RegisterCourierCommand) setAdminID(adminID int64) error {
	if adminID == 0 {
		return errs.NewValueIsRequiredError("admin id")
	}
	c.adminID = adminID
	return nil
}

func (c *RegisterCourierCommand) setChatID(chatID int64) error {
	if chatID == 0 {
		return errs.NewValueIsRequiredError("chat id")
	}
	c.chatID = chatID
	return nil
}

func (c *RegisterCourierCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *RegisterCourierCommand) setPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}
	c.phone = phone
	return nil
}
