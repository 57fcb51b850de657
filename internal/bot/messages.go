package bot

// Canned replies, kept in one place so wording changes don't touch
// handler logic.
const (
	welcomeMessage = "👋 **Halo! Selamat datang di Bot Keuangan!**\n\n" +
		"Aku bisa bantu kamu catat keuangan dengan mudah!\n\n" +
		"📝 **Cara pakai:**\n" +
		"Kirim pesan biasa aja, misalnya:\n" +
		"• Makan siang 25000\n" +
		"• Beli kopi 15rb\n" +
		"• Gaji 5jt\n" +
		"• Grab ke mall 20k\n" +
		"• Kemarin makan bakso 15rb\n\n" +
		"📸 Atau kirim foto struk langsung!\n\n" +
		"⚙️ **Command:**\n" +
		"/start - Mulai bot\n" +
		"/help - Lihat bantuan\n" +
		"/saldo - Cek saldo\n" +
		"/catat - Catat untuk tanggal tertentu\n"

	helpMessage = "📚 **PANDUAN LENGKAP**\n\n" +
		"**Format Pesan:**\n" +
		"Kirim pesan natural aja, aku akan otomatis deteksi!\n\n" +
		"**Contoh Pengeluaran:**\n" +
		"• Makan siang 25000\n" +
		"• Beli baju 150rb\n" +
		"• Bensin 50k\n" +
		"• Bayar listrik 200ribu\n\n" +
		"**Contoh Pemasukan:**\n" +
		"• Gaji 5jt\n" +
		"• Terima transfer 500rb\n" +
		"• Bonus 1juta\n\n" +
		"**Format Angka:**\n" +
		"• 15000 atau 15rb atau 15k → Rp 15.000\n" +
		"• 1.5jt atau 1,5jt → Rp 1.500.000\n\n" +
		"**Format Tanggal:**\n" +
		"• kemarin makan 25000\n" +
		"• 3 hari lalu bensin 50k\n" +
		"• /catat 10/01/2026 makan siang 25000\n\n" +
		"Bot akan otomatis kategorikan transaksi kamu! 🎯"

	noAmountMessage = "❌ Maaf, nominal tidak ditemukan.\n" +
		"Contoh: \"makan siang 25000\", \"beli kopi 15rb\", atau \"gaji 5jt\"."

	badDateMessage = "❌ Format tanggal salah.\n" +
		"Pakai DD/MM/YYYY, contoh: /catat 10/01/2026 makan siang 25000"

	genericErrorMessage = "❌ Maaf, terjadi error saat memproses pesan. Coba lagi ya!"

	notSavedNote = "\n\n⚠️ Gagal menyimpan ke Google Sheets."

	receiptQueuedMessage = "📸 Struk diterima! Lagi dibaca, tunggu sebentar ya..."

	receiptsDisabledMessage = "ℹ️ Pembacaan struk belum dikonfigurasi (GCS_BUCKET / kredensial Gemini)."

	receiptFailedMessage = "❌ Tidak bisa membaca struk. " +
		"Pastikan foto jelas dan total pembayarannya terlihat!"
)
