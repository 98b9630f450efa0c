package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"terminal-terrace/ai-magazine/config"
	"terminal-terrace/ai-magazine/internal/aigateway"
	"terminal-terrace/ai-magazine/internal/aisetting"
	"terminal-terrace/ai-magazine/internal/article"
	"terminal-terrace/ai-magazine/internal/cache"
	"terminal-terrace/ai-magazine/internal/database"
	"terminal-terrace/ai-magazine/internal/storagelink"
	"terminal-terrace/ai-magazine/internal/user"
	"terminal-terrace/ai-magazine/packages/authsdk"
)

func aiSettings() *aisetting.Service {
	conf := config.Conf
	return aisetting.NewService(database.PostgresDB, cache.New(database.RedisDB, conf.AI.CacheTTL()), aigateway.New(), conf.AI)
}

func aiInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ai:init",
		Short: "Tạo cấu hình AI mặc định nếu chưa có",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := openDB(); err != nil {
				return err
			}
			defer database.Close()

			setting, created, err := aiSettings().Init(cmd.Context())
			if err != nil {
				return err
			}
			if created {
				cmd.Printf("Đã tạo cấu hình AI mặc định (%s / %s)\n", setting.Provider, setting.Model)
			} else {
				cmd.Printf("Cấu hình AI đã tồn tại (%s / %s)\n", setting.Provider, setting.Model)
			}
			return nil
		},
	}
}

func aiTestCmd() *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "ai:test",
		Short: "Gửi một yêu cầu thử tới nhà cung cấp AI hiện tại",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := openDB(); err != nil {
				return err
			}
			defer database.Close()

			result, err := aiSettings().Test(cmd.Context(), prompt)
			if err != nil {
				return err
			}
			if !result.Success {
				return fmt.Errorf("AI trả về lỗi: %s", result.Error)
			}
			cmd.Println(result.Content)
			return nil
		},
	}
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "nội dung gửi thử")
	return cmd
}

func docsPublishCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "docs:publish",
		Short: "Sinh lại tài liệu swagger",
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.PublishDocs(cmd.Context(), timeout)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "thời gian chờ tối đa")
	return cmd
}

func storageLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "storage:link",
		Short: "Kiểm tra và tạo lại liên kết thư mục lưu trữ công khai",
		RunE: func(cmd *cobra.Command, args []string) error {
			g := storagelink.NewGuardian(config.Conf.Storage.PrivateDir, config.Conf.Storage.PublicLink)
			relinked, err := g.Ensure()
			if err != nil {
				return err
			}
			if relinked {
				cmd.Println("Đã tạo lại liên kết lưu trữ")
			} else {
				cmd.Println("Liên kết lưu trữ hoạt động bình thường")
			}
			return nil
		},
	}
}

func rewriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rewrite <article-id>",
		Short: "Viết lại một bài viết bằng AI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || id == 0 {
				return fmt.Errorf("ID không hợp lệ: %s", args[0])
			}
			if err := openDB(); err != nil {
				return err
			}
			defer database.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), config.Conf.AI.RequestTimeout()+10*time.Second)
			defer cancel()

			svc := article.NewService(database.PostgresDB, article.WithGenerator(aiSettings()))
			rw, err := svc.Rewrite(ctx, uint(id))
			if err != nil {
				return err
			}
			cmd.Printf("Đã lưu bản viết lại #%d (%s), chờ duyệt\n", rw.ID, rw.Provider)
			return nil
		},
	}
}

type adminInput struct {
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,min=8,max=72"`
	Name     string `validate:"required,max=255"`
}

func seedAdminCmd() *cobra.Command {
	var in adminInput
	cmd := &cobra.Command{
		Use:   "seed:admin",
		Short: "Tạo tài khoản quản trị",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validator.New().Struct(in); err != nil {
				return err
			}
			if err := openDB(); err != nil {
				return err
			}
			defer database.Close()

			u, err := user.NewService(database.PostgresDB).Create(cmd.Context(), user.CreateRequest{
				Name:     in.Name,
				Email:    in.Email,
				Password: in.Password,
				Role:     authsdk.RoleAdmin,
			})
			if err != nil {
				return err
			}
			cmd.Printf("Đã tạo quản trị viên #%d <%s>\n", u.ID, u.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "email đăng nhập")
	cmd.Flags().StringVar(&in.Password, "password", "", "mật khẩu (tối thiểu 8 ký tự)")
	cmd.Flags().StringVar(&in.Name, "name", "Administrator", "tên hiển thị")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func configGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config:get <key>",
		Short: "In giá trị cấu hình đã hợp nhất (tệp + biến môi trường)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.TrimSpace(args[0])
			value := config.GetString(key)
			if value == "" {
				return fmt.Errorf("khóa cấu hình %q chưa được thiết lập", key)
			}
			lower := strings.ToLower(key)
			if strings.Contains(lower, "password") || strings.Contains(lower, "secret") || strings.Contains(lower, "api_key") {
				value = "******"
			}
			cmd.Println(value)
			return nil
		},
	}
}
