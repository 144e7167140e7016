// Package media 负责上传文件在本地卷上的存取
package media

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"recipe-app-api/app/server/constants"
	"strings"

	"github.com/google/uuid"
)

type Storage struct {
	root string // 存储根目录
	url  string // 对外访问的路径前缀
}

func New(root string, url string) (*Storage, error) {
	if root == "" {
		return nil, errors.New("media root is empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	return &Storage{root: root, url: url}, nil
}

// SaveRecipeImage 以随机生成的文件名保存图片，返回相对于根目录的路径
func (s *Storage) SaveRecipeImage(r io.Reader, ext string) (string, error) {
	rel := path.Join(constants.RecipeImageDir, uuid.New().String()+"."+strings.TrimPrefix(ext, "."))
	abs := s.abs(rel)

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}

	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	if _, err = io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(abs)
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(abs)
		return "", fmt.Errorf("close image file: %w", err)
	}

	return rel, nil
}

// Remove 删除文件，文件本来就不存在时不算错误
func (s *Storage) Remove(rel string) error {
	if err := os.Remove(s.abs(rel)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", rel, err)
	}
	return nil
}

// URL 返回文件对外访问的地址
func (s *Storage) URL(rel string) string {
	u, err := url.JoinPath(s.url, rel)
	if err != nil {
		return s.url + rel
	}
	return u
}

func (s *Storage) abs(rel string) string {
	// 只允许落在根目录之内
	return filepath.Join(s.root, filepath.FromSlash(path.Clean("/"+rel)))
}
