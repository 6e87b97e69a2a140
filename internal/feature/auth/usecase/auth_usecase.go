// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"commerce_backend/internal/feature/auth/domain"
	"commerce_backend/internal/feature/auth/domain/entity"
	"commerce_backend/internal/platform/token"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// stateLength はOAuth CSRF stateの乱数バイト長を定義します。
	stateLength = 32
)

// dummyPasswordHash はタイミング攻撃緩和用のダミー認証情報です。
// ユーザーが存在しない場合でもハッシュ検証が常に実行されることを保証します。
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=3,p=2$QUFBQUFBQUFBQUFBQUFBQQ$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
// 検索系の操作はすべてアクティブなアカウントのみを対象とします。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 一意性制約に違反した場合、domain.ErrDuplicateAccountを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するアクティブなユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByOAuth は(provider, provider_id)に一致するアクティブなユーザーを取得します。
	FindByOAuth(ctx context.Context, provider, oauthID string) (*entity.User, error)

	// FindByID は指定されたIDに一致するアクティブなユーザーを取得します。
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// Update は既存ユーザーの変更を永続化します。
	// 一意性制約に違反した場合、domain.ErrDuplicateAccountを返します。
	Update(ctx context.Context, user *entity.User) error

	// Deactivate はユーザーを論理削除します。
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// TokenCodec は署名付きセッショントークンの発行・検証を抽象化します。
type TokenCodec interface {
	// Issue は指定されたユーザーの署名済みトークンを生成します。
	Issue(userID, email string) (string, error)

	// Verify はトークンの署名と有効期限を検証し、クレームを返します。
	Verify(tokenString string) (*token.Claims, error)
}

// PasswordHasher はパスワードのハッシュ化と検証を抽象化します。
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}

// OAuthProvider は外部OAuthプロバイダーとのやり取りを抽象化します。
type OAuthProvider interface {
	Name() string
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*entity.OAuthIdentity, error)
}

// OAuthProviderRegistry は設定済みプロバイダーの検索を抽象化します。
type OAuthProviderRegistry interface {
	// Get は名前でプロバイダーを取得します。未設定の場合はfalseを返します。
	Get(name string) (OAuthProvider, bool)
}

// StateStore はOAuthのCSRF stateの保存と消費を抽象化します。
type StateStore interface {
	// Put はstateをTTL付きで保存します。
	Put(ctx context.Context, state string) error

	// Consume はstateを検証して削除します（1回限り有効）。
	Consume(ctx context.Context, state string) (bool, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users     UserRepository
	resolver  *AccountResolver
	hasher    PasswordHasher
	codec     TokenCodec
	providers OAuthProviderRegistry
	states    StateStore
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(
	users UserRepository,
	hasher PasswordHasher,
	codec TokenCodec,
	providers OAuthProviderRegistry,
	states StateStore,
) *authUsecase {
	return &authUsecase{
		users:     users,
		resolver:  NewAccountResolver(users),
		hasher:    hasher,
		codec:     codec,
		providers: providers,
		states:    states,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録します。
// 登録とログインは別ステップのため、トークンは発行しません。
// 同じメールアドレスのアクティブなアカウントが存在する場合、パスワード
// 未設定のOAuth専用アカウントであってもdomain.ErrDuplicateAccountを返します。
func (u *authUsecase) Register(ctx context.Context, email, password, displayName string) (*entity.User, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	email = NormalizeEmail(email)

	// 事前チェック。同時登録のレースはストアの一意性制約が拾う。
	_, err := u.resolver.ResolvePassword(ctx, email)
	if err == nil {
		return nil, domain.ErrDuplicateAccount
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check for existing account: %w", err)
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: &hashed,
		DisplayName:  displayName,
		IsActive:     true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		// ストア側の一意性違反はdomain.ErrDuplicateAccountに変換済み
		return nil, err
	}
	return user, nil
}

// Login はユーザーを認証し、成功時に署名済みトークンを返します。
// ユーザー未検出・パスワード認証情報なし・パスワード不一致はすべて
// domain.ErrInvalidCredentialsに収束します（アカウント列挙攻撃の防止）。
// タイミング攻撃を緩和するため、どの経路でもハッシュ検証を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, err := u.resolver.ResolvePassword(ctx, email)

	passwordHash := dummyPasswordHash
	if err == nil && user.HasPassword() {
		passwordHash = *user.PasswordHash
	}

	// ユーザーの有無に関わらず常に検証を実行する
	ok := u.hasher.Verify(password, passwordHash)

	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if !user.HasPassword() || !ok {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, domain.ErrAccountDisabled
	}

	signed, err := u.codec.Issue(user.ID.String(), user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, user, nil
}

// AuthorizationURL は指定されたプロバイダーの認可URLとCSRF stateを生成します。
// プロバイダーの認証情報が未設定の場合、domain.ErrOAuthNotConfiguredを返します。
func (u *authUsecase) AuthorizationURL(ctx context.Context, providerName string) (string, string, error) {
	provider, ok := u.providers.Get(providerName)
	if !ok {
		return "", "", domain.ErrOAuthNotConfigured
	}

	state, err := generateState()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate state: %w", err)
	}
	if err := u.states.Put(ctx, state); err != nil {
		return "", "", fmt.Errorf("failed to store state: %w", err)
	}

	return provider.AuthCodeURL(state), state, nil
}

// LoginWithOAuth は認可コードをプロバイダーと交換し、解決したアカウントの
// トークンを発行します。交換・プロフィール取得・クレーム検証のいずれが
// 失敗してもdomain.ErrOAuthFailedに収束し、アカウントは一切作成されません。
func (u *authUsecase) LoginWithOAuth(ctx context.Context, providerName, code, state string) (string, *entity.User, error) {
	provider, ok := u.providers.Get(providerName)
	if !ok {
		return "", nil, domain.ErrOAuthNotConfigured
	}

	valid, err := u.states.Consume(ctx, state)
	if err != nil {
		return "", nil, fmt.Errorf("failed to consume state: %w", err)
	}
	if !valid {
		return "", nil, domain.ErrOAuthFailed
	}

	identity, err := provider.Exchange(ctx, code)
	if err != nil {
		// 内部の失敗理由はログにのみ残し、呼び出し元には単一の条件を返す
		slog.Warn("oauth exchange failed", "provider", providerName, "error", err)
		return "", nil, domain.ErrOAuthFailed
	}
	if identity.Email == "" || identity.ProviderID == "" {
		return "", nil, domain.ErrOAuthFailed
	}

	user, err := u.resolver.ResolveOAuth(ctx, identity)
	if err != nil {
		// 同時リンクのレースによる一意性違反も同じ条件に収束する
		slog.Warn("oauth account resolution failed", "provider", providerName, "error", err)
		return "", nil, domain.ErrOAuthFailed
	}

	signed, err := u.codec.Issue(user.ID.String(), user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, user, nil
}

// VerifyToken はセッショントークンを検証し、対象のアクティブなユーザーを
// 解決します。トークン不正はdomain.ErrTokenInvalid、対象ユーザーの不在
// （非アクティブ含む）はdomain.ErrUserNotFoundを返します。
func (u *authUsecase) VerifyToken(ctx context.Context, tokenString string) (*entity.User, error) {
	claims, err := u.codec.Verify(tokenString)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve token subject: %w", err)
	}
	return user, nil
}

// generateState はURLセーフなランダムstateを生成します。
func generateState() (string, error) {
	b := make([]byte, stateLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
