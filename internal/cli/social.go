package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/julianstephens/habitboard/internal/constants"
)

type FriendCmd struct {
	Add  FriendAddCmd  `cmd:"" help:"Add a friend by friend code."`
	List FriendListCmd `cmd:"" help:"List friends."`
}

type FriendAddCmd struct {
	Code string `arg:"" help:"Friend code (8 hex characters)."`
}

func (c *FriendAddCmd) Run(ctx *Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	res, err := ctx.Service.AddFriend(ctx.Ctx(), user, c.Code)
	if err != nil {
		return err
	}
	if res.Status == constants.FriendStatusAdded {
		fmt.Printf("✓ You are now friends with %s\n", res.FriendName)
	} else {
		fmt.Printf("Already friends with %s\n", res.FriendName)
	}
	return nil
}

type FriendListCmd struct{}

func (c *FriendListCmd) Run(ctx *Context) error {
	user, err := ctx.User()
	if err != nil {
		return err
	}
	friends, err := ctx.Service.ListFriends(ctx.Ctx(), user)
	if err != nil {
		return err
	}
	if len(friends) == 0 {
		fmt.Printf("No friends yet. Share your code: %s\n", user.FriendCode)
		return nil
	}
	for _, f := range friends {
		fmt.Printf("%-20s @%s\n", f.FullName, f.Username)
	}
	return nil
}

type UserCmd struct {
	Add UserAddCmd `cmd:"" help:"Create a user."`
	Me  UserMeCmd  `cmd:"" help:"Show the current user and friend code."`
}

type UserAddCmd struct {
	Username string `arg:"" help:"Unique username (no spaces)."`
	FullName string `help:"Display name." default:""`
	Picture  string `help:"Profile picture URL." default:""`
}

func (c *UserAddCmd) Run(ctx *Context) error {
	u, err := ctx.Service.CreateUser(ctx.Ctx(), c.Username, c.FullName, c.Picture)
	if err != nil {
		return err
	}
	fmt.Printf("Created user @%s (%s)\n", u.Username, u.FullName)
	fmt.Printf("  friend code: %s\n", u.FriendCode)
	return nil
}

type UserMeCmd struct{}

func (c *UserMeCmd) Run(ctx *Context) error {
	u, err := ctx.User()
	if err != nil {
		return err
	}
	fmt.Printf("%s (@%s)\n", u.FullName, u.Username)
	fmt.Printf("  friend code: %s\n", u.FriendCode)
	fmt.Printf("  member since: %s\n", u.CreatedAt.Format(constants.DateFormat))
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
